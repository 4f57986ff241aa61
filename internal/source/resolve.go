package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var githubRefPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/\s]+)`)

// Resolver turns raw source references into Source adapters. Remote
// references share one GitHub API client; everything else becomes a
// local git checkout adapter.
type Resolver struct {
	github *GitHubClient
	log    *logrus.Logger
}

// NewResolver creates a resolver. The GitHub client may be nil when
// only local sources are expected; resolving a remote reference then
// fails with a descriptive error.
func NewResolver(gh *GitHubClient, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{github: gh, log: log}
}

// Resolve classifies and constructs the adapter for one reference.
// The reference is cleaned first: surrounding quotes stripped,
// whitespace trimmed.
func (r *Resolver) Resolve(ref string) (Source, error) {
	cleaned := CleanRef(ref)
	if cleaned == "" {
		return nil, fmt.Errorf("empty source reference")
	}

	if IsRemote(cleaned) {
		owner, repo, err := ParseGitHubRef(cleaned)
		if err != nil {
			return nil, err
		}
		if r.github == nil {
			return nil, fmt.Errorf("no GitHub client configured for remote source %s", cleaned)
		}
		return NewGitHubSource(r.github, cleaned, owner, repo, r.log), nil
	}

	return NewLocalSource(cleaned, r.log), nil
}

// IsRemote reports whether a reference names a hosted repository
// rather than a local path: a github.com hostname, an http(s) URL, or
// an SSH-style git@ address.
func IsRemote(ref string) bool {
	return strings.Contains(ref, "github.com") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "git@")
}

// CleanRef strips quote characters and surrounding whitespace from a
// user-supplied reference. Path traversal is not treated specially;
// references are trusted input.
func CleanRef(ref string) string {
	ref = strings.ReplaceAll(ref, `"`, "")
	ref = strings.ReplaceAll(ref, `'`, "")
	return strings.TrimSpace(ref)
}

// RepoName derives the short display label for a reference: the last
// path segment with any .git suffix removed.
func RepoName(ref string) string {
	trimmed := strings.TrimRight(ref, "/\\")
	idx := strings.LastIndexAny(trimmed, "/\\")
	name := trimmed
	if idx >= 0 {
		name = trimmed[idx+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

// ParseGitHubRef extracts the owner and repository name from a GitHub
// URL or SSH address.
func ParseGitHubRef(ref string) (owner, repo string, err error) {
	m := githubRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", "", fmt.Errorf("cannot determine owner/repo from %s", ref)
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), nil
}

// SplitRefs splits a single comma- or newline-separated reference
// string into cleaned individual references, dropping empties.
func SplitRefs(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var refs []string
	for _, f := range fields {
		if cleaned := CleanRef(f); cleaned != "" {
			refs = append(refs, cleaned)
		}
	}
	return refs
}
