package source

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/digestkit/gitdigest/internal/commit"
)

const (
	gitLogFormat  = "%H|%an|%ad|%s"
	gitDateFormat = "%Y-%m-%d %H:%M:%S"
	logFieldCount = 4
)

// gitRunner executes git with the given arguments in dir and returns
// stdout. Stubbed in tests.
type gitRunner func(ctx context.Context, dir string, args []string) ([]byte, error)

// LocalSource fetches commits from a git checkout on disk by invoking
// git log. The command is always built as an argument array; user
// input (path, author filter) is never interpolated into a shell
// string.
type LocalSource struct {
	path string
	name string
	run  gitRunner
	log  *logrus.Logger
}

// NewLocalSource creates an adapter for the checkout at path. The path
// is expected to be cleaned already (see CleanRef).
func NewLocalSource(path string, log *logrus.Logger) *LocalSource {
	if log == nil {
		log = logrus.New()
	}
	return &LocalSource{
		path: path,
		name: RepoName(path),
		run:  runGit,
		log:  log,
	}
}

func (s *LocalSource) ID() string   { return s.path }
func (s *LocalSource) Name() string { return s.name }

// Fetch runs git log scoped to the window's calendar days and parses
// the hash|author|date|subject output. A line with fewer than four
// fields fails the whole fetch.
func (s *LocalSource) Fetch(ctx context.Context, win commit.Window, author string) ([]commit.Commit, error) {
	args := []string{
		"log",
		"--since=" + win.Start + " 00:00:00",
		"--until=" + win.End + " 23:59:59",
		"--pretty=format:" + gitLogFormat,
		"--date=format:" + gitDateFormat,
	}
	if author != "" {
		args = append(args, "--author="+author)
	}

	out, err := s.run(ctx, s.path, args)
	if err != nil {
		return nil, &FetchError{Ref: s.path, Err: err}
	}

	commits, err := s.parseLog(string(out))
	if err != nil {
		return nil, &FetchError{Ref: s.path, Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"source":  s.name,
		"commits": len(commits),
	}).Info("fetched commits from local repository")

	return commits, nil
}

func (s *LocalSource) parseLog(out string) ([]commit.Commit, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}

	var commits []commit.Commit
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "|", logFieldCount)
		if len(parts) < logFieldCount {
			return nil, fmt.Errorf("%w: line %q has %d fields, want %d", ErrMalformedOutput, line, len(parts), logFieldCount)
		}
		rec := LocalRecord{
			Hash:      parts[0],
			Author:    parts[1],
			Timestamp: parts[2],
			Subject:   parts[3],
		}
		c, err := NormalizeLocal(rec, s.path, s.name)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func runGit(ctx context.Context, dir string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git log failed: %w (stderr: %s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git log failed: %w", err)
	}
	return out, nil
}
