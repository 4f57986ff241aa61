// Package source contains the commit source adapters: local git
// checkouts queried through git log, and GitHub repositories queried
// through the REST API. Each adapter produces canonical commits for a
// date window, optionally filtered by author.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/digestkit/gitdigest/internal/commit"
)

// ErrMalformedOutput signals that a source produced a record the
// parser could not interpret (for example a git log line with fewer
// than four fields). It aborts that source's fetch instead of
// silently dropping fields.
var ErrMalformedOutput = errors.New("malformed source output")

// FetchError wraps a failure of one source's fetch. It is captured
// per source and never aborts processing of the remaining sources.
type FetchError struct {
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching commits from %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Source fetches commits for one repository.
type Source interface {
	// ID returns the originating reference (path or URL).
	ID() string

	// Name returns a short human-readable label for the source.
	Name() string

	// Fetch returns the commits inside the window, newest-first as
	// reported by the underlying tool, filtered by author when author
	// is non-empty.
	Fetch(ctx context.Context, win commit.Window, author string) ([]commit.Commit, error)
}
