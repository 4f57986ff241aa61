package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/digestkit/gitdigest/internal/commit"
	"github.com/digestkit/gitdigest/internal/source"
)

// Request is the user-supplied configuration for one report.
type Request struct {
	Window          commit.Window `json:"window"`
	Sources         []string      `json:"repos,omitempty"`
	Author          string        `json:"author,omitempty"`
	ExcludeWeekends bool          `json:"excludeWeekends,omitempty"`
}

// Result is the single outcome object returned to the caller. Message
// always describes the outcome in human-readable form; no raw internal
// error reaches the caller unformatted.
type Result struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Report  *Report `json:"reportData,omitempty"`
}

// SourceResolver turns a raw reference into a fetchable source.
type SourceResolver interface {
	Resolve(ref string) (source.Source, error)
}

// Notifier delivers a finished report to the configured sink and
// returns the number of pages delivered.
type Notifier interface {
	Notify(ctx context.Context, rep *Report) (pages int, err error)
}

// Generator is the report pipeline: resolve and fetch each source,
// aggregate, deliver. One invocation owns its whole Report; there is
// no shared state across requests.
type Generator struct {
	Resolver SourceResolver
	Notifier Notifier
	Log      *logrus.Logger

	// now is stubbed in tests; defaults to time.Now.
	now func() time.Time
}

// NewGenerator wires the pipeline.
func NewGenerator(resolver SourceResolver, notifier Notifier, log *logrus.Logger) *Generator {
	if log == nil {
		log = logrus.New()
	}
	return &Generator{Resolver: resolver, Notifier: notifier, Log: log, now: time.Now}
}

// Generate builds and delivers one report. Per-source fetch failures
// are captured as failed SourceResults and never abort the remaining
// sources; every other failure is converted into a failed Result.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	if err := validateWindow(req.Window, g.now()); err != nil {
		return failure(err)
	}

	all, results := g.fetchAll(ctx, req)
	rep := New(all, req.Window, req.ExcludeWeekends, results)

	pages, err := g.Notifier.Notify(ctx, rep)
	if err != nil {
		return failure(err)
	}

	g.Log.WithFields(logrus.Fields{
		"commits": len(rep.Commits),
		"pages":   pages,
	}).Info("report delivered")

	return Result{
		Success: true,
		Message: successMessage(rep, req.Author, pages),
		Report:  rep,
	}
}

// fetchAll resolves and fetches every requested source sequentially,
// best-effort per source.
func (g *Generator) fetchAll(ctx context.Context, req Request) ([]commit.Commit, []SourceResult) {
	var all []commit.Commit
	var results []SourceResult

	for _, ref := range req.Sources {
		cleaned := source.CleanRef(ref)
		if cleaned == "" {
			continue
		}

		src, err := g.Resolver.Resolve(cleaned)
		if err != nil {
			g.Log.WithField("source", cleaned).WithError(err).Warn("cannot resolve source")
			results = append(results, SourceResult{
				SourceID:    cleaned,
				SourceName:  source.RepoName(cleaned),
				Succeeded:   false,
				ErrorDetail: err.Error(),
			})
			continue
		}

		commits, err := src.Fetch(ctx, req.Window, req.Author)
		if err != nil {
			g.Log.WithField("source", src.Name()).WithError(err).Warn("source fetch failed")
			results = append(results, SourceResult{
				SourceID:    src.ID(),
				SourceName:  src.Name(),
				Succeeded:   false,
				ErrorDetail: err.Error(),
			})
			continue
		}

		all = append(all, commits...)
		results = append(results, SourceResult{
			SourceID:    src.ID(),
			SourceName:  src.Name(),
			CommitCount: len(commits),
			Succeeded:   true,
		})
	}

	return all, results
}

func validateWindow(win commit.Window, now time.Time) error {
	if win.Start == "" || win.End == "" {
		return fmt.Errorf("report window requires a start and end date")
	}
	for _, d := range []string{win.Start, win.End} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
		}
		if d > now.Format("2006-01-02") {
			return fmt.Errorf("date %s is in the future", d)
		}
	}
	// End before start is tolerated and simply yields an empty report.
	return nil
}

func failure(err error) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("Failed to generate report: %v", err),
	}
}

func successMessage(rep *Report, author string, pages int) string {
	pageText := ""
	if pages > 1 {
		pageText = fmt.Sprintf(" across %d pages", pages)
	}

	authorText := ""
	if author != "" {
		authorText = fmt.Sprintf(" for author %q", author)
	}

	repoText := ""
	var succeeded []SourceResult
	for _, s := range rep.Sources {
		if s.Succeeded {
			succeeded = append(succeeded, s)
		}
	}
	switch {
	case len(succeeded) > 1:
		repoText = fmt.Sprintf(" from %d repositories", len(succeeded))
	case len(succeeded) == 1:
		repoText = fmt.Sprintf(" from repository %q", succeeded[0].SourceName)
	}

	if rep.Window.Single() {
		return fmt.Sprintf("Daily report for %s%s%s sent successfully! Found %d commits%s.",
			rep.Window.Start, authorText, repoText, len(rep.Commits), pageText)
	}
	return fmt.Sprintf("Date range report from %s to %s%s%s sent successfully! Found %d commits%s.",
		rep.Window.Start, rep.Window.End, authorText, repoText, len(rep.Commits), pageText)
}
