package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/digestkit/gitdigest/internal/commit"
)

// NoCommitsSummary is the fixed summary for an empty report.
const NoCommitsSummary = "No commits found for this date"

// New builds the aggregate report over all fetched commits: window
// filtering, optional weekend exclusion, time-descending sort, date
// grouping, summary and table view.
func New(all []commit.Commit, win commit.Window, excludeWeekends bool, sources []SourceResult) *Report {
	var kept []commit.Commit
	for _, c := range all {
		if !win.Contains(c.Date) {
			continue
		}
		if excludeWeekends && isWeekend(c.Date) {
			continue
		}
		kept = append(kept, c)
	}

	// Newest time-of-day first; lexical comparison of the zero-padded
	// time component.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time > kept[j].Time
	})

	return &Report{
		Window:  win,
		Commits: kept,
		Summary: summarize(kept),
		Sources: sources,
		ByDate:  groupByDate(kept),
		Table:   tableView(kept),
	}
}

func isWeekend(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// groupByDate buckets commits stably, keys in first-seen order.
func groupByDate(commits []commit.Commit) []DateGroup {
	index := make(map[string]int)
	var groups []DateGroup
	for _, c := range commits {
		i, ok := index[c.Date]
		if !ok {
			i = len(groups)
			index[c.Date] = i
			groups = append(groups, DateGroup{Date: c.Date})
		}
		groups[i].Commits = append(groups[i].Commits, c)
	}
	return groups
}

// tableView builds one row per distinct date, dates ascending.
func tableView(commits []commit.Commit) []DateRow {
	groups := groupByDate(commits)
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})

	rows := make([]DateRow, 0, len(groups))
	for _, g := range groups {
		var messages, times, hashes []string
		for _, c := range g.Commits {
			messages = append(messages, c.Message)
			times = append(times, c.Time)
			hashes = append(hashes, c.Hash)
		}
		rows = append(rows, DateRow{
			Date:        g.Date,
			Message:     strings.Join(messages, " | "),
			Time:        strings.Join(times, ", "),
			Hash:        strings.Join(hashes, ", "),
			Author:      strings.Join(distinct(g.Commits, func(c commit.Commit) string { return c.Author }), ", "),
			Source:      strings.Join(distinct(g.Commits, func(c commit.Commit) string { return c.SourceName }), ", "),
			CommitCount: len(g.Commits),
		})
	}
	return rows
}

// distinct extracts non-empty values preserving first-seen order.
func distinct(commits []commit.Commit, key func(commit.Commit) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range commits {
		v := key(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// summarize derives the report summary: the fixed no-commits string,
// a single commit's message verbatim, or comma-joined per-category
// count clauses in category-first-seen order.
func summarize(commits []commit.Commit) string {
	if len(commits) == 0 {
		return NoCommitsSummary
	}
	if len(commits) == 1 {
		return commits[0].Message
	}

	counts := make(map[commit.Category]int)
	var order []commit.Category
	for _, c := range commits {
		cat := commit.Categorize(c.Message)
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	var parts []string
	for _, cat := range order {
		label, ok := commit.SummaryLabel(cat)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", counts[cat], label))
	}

	// Unreachable as long as "other" is the catch-all, kept for the
	// label-less case.
	if len(parts) == 0 {
		return fmt.Sprintf("%d commits completed", len(commits))
	}
	return strings.Join(parts, ", ")
}
