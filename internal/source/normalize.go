package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/digestkit/gitdigest/internal/commit"
)

// The two raw record shapes are kept as explicit variants, one per
// source kind, each with its own mapping function. No runtime shape
// sniffing: a local record always carries a combined date-time string,
// a GitHub record always carries a parsed time.Time.

// LocalRecord is one parsed git log line.
type LocalRecord struct {
	Hash      string
	Author    string
	Timestamp string // "YYYY-MM-DD HH:MM:SS"
	Subject   string
}

// GitHubRecord is one commit entry from the GitHub commits API.
type GitHubRecord struct {
	SHA     string
	Author  string
	Date    time.Time
	Message string // full message, possibly multi-line
}

// NormalizeLocal maps a git log record to the canonical commit shape.
// A timestamp without a valid date component is malformed input, not a
// value to guess a date for.
func NormalizeLocal(rec LocalRecord, sourceID, sourceName string) (commit.Commit, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(rec.Timestamp), " ")
	if !ok {
		return commit.Commit{}, fmt.Errorf("%w: timestamp %q has no date component", ErrMalformedOutput, rec.Timestamp)
	}
	if _, err := time.Parse("2006-01-02", datePart); err != nil {
		return commit.Commit{}, fmt.Errorf("%w: invalid date %q", ErrMalformedOutput, datePart)
	}

	return commit.Commit{
		Hash:       shortHash(rec.Hash),
		Author:     rec.Author,
		Date:       datePart,
		Time:       timePart,
		Message:    firstLine(rec.Subject),
		SourceID:   sourceID,
		SourceName: sourceName,
	}, nil
}

// NormalizeGitHub maps a GitHub API record to the canonical commit
// shape. The API reports author dates in UTC.
func NormalizeGitHub(rec GitHubRecord, sourceID, sourceName string) commit.Commit {
	ts := rec.Date.UTC()
	return commit.Commit{
		Hash:       shortHash(rec.SHA),
		Author:     rec.Author,
		Date:       ts.Format("2006-01-02"),
		Time:       ts.Format("15:04:05"),
		Message:    firstLine(rec.Message),
		SourceID:   sourceID,
		SourceName: sourceName,
	}
}

func shortHash(full string) string {
	if len(full) > commit.HashLength {
		return full[:commit.HashLength]
	}
	return full
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
