// Package clierr carries process exit codes on errors so that main
// stays a one-liner.
package clierr

import (
	"errors"
	"fmt"
)

// ExitError is an error with an explicit process exit code. It wraps
// an optional cause so errors.Is/As keep working.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message. Codes <= 0 are normalized
// to 1; errors never exit 0.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError around a cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts the exit code from any error, defaulting to 1
// for plain errors and 0 for nil.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	if code <= 0 {
		return 1
	}
	return code
}
