package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digestkit/gitdigest/internal/commit"
)

func mk(date, tm, message, author, repo string) commit.Commit {
	return commit.Commit{
		Hash:       "abcd1234",
		Author:     author,
		Date:       date,
		Time:       tm,
		Message:    message,
		SourceID:   "/src/" + repo,
		SourceName: repo,
	}
}

func TestNewFiltersByWindow(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-01", "09:00:00", "feat: in range", "Dev", "r"),
		mk("2023-12-31", "09:00:00", "fix: before", "Dev", "r"),
		mk("2024-01-03", "09:00:00", "fix: after", "Dev", "r"),
	}

	rep := New(all, commit.Window{Start: "2024-01-01", End: "2024-01-02"}, false, nil)
	require.Len(t, rep.Commits, 1)
	assert.Equal(t, "feat: in range", rep.Commits[0].Message)
}

// An inverted window is tolerated: the result is empty, not an error.
func TestNewInvertedWindow(t *testing.T) {
	all := []commit.Commit{mk("2024-01-01", "09:00:00", "feat: x", "Dev", "r")}
	rep := New(all, commit.Window{Start: "2024-01-05", End: "2024-01-01"}, false, nil)
	assert.Empty(t, rep.Commits)
	assert.Equal(t, NoCommitsSummary, rep.Summary)
}

func TestNewExcludesWeekends(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-05", "09:00:00", "feat: friday", "Dev", "r"),
		mk("2024-01-06", "09:00:00", "feat: saturday", "Dev", "r"),
		mk("2024-01-07", "09:00:00", "feat: sunday", "Dev", "r"),
		mk("2024-01-08", "09:00:00", "feat: monday", "Dev", "r"),
	}
	win := commit.Window{Start: "2024-01-05", End: "2024-01-08"}

	rep := New(all, win, true, nil)
	require.Len(t, rep.Commits, 2)
	for _, c := range rep.Commits {
		assert.NotContains(t, []string{"2024-01-06", "2024-01-07"}, c.Date)
	}

	rep = New(all, win, false, nil)
	assert.Len(t, rep.Commits, 4)
}

func TestNewSortsNewestFirst(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-01", "08:00:00", "feat: early", "Dev", "r"),
		mk("2024-01-01", "17:30:00", "feat: late", "Dev", "r"),
		mk("2024-01-01", "12:15:00", "feat: noon", "Dev", "r"),
	}

	rep := New(all, commit.Day("2024-01-01"), false, nil)
	require.Len(t, rep.Commits, 3)
	assert.Equal(t, "17:30:00", rep.Commits[0].Time)
	assert.Equal(t, "12:15:00", rep.Commits[1].Time)
	assert.Equal(t, "08:00:00", rep.Commits[2].Time)
}

func TestGroupByDateFirstSeenOrder(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-02", "18:00:00", "feat: b1", "Dev", "r"),
		mk("2024-01-01", "17:00:00", "feat: a1", "Dev", "r"),
		mk("2024-01-02", "09:00:00", "feat: b2", "Dev", "r"),
	}

	rep := New(all, commit.Window{Start: "2024-01-01", End: "2024-01-02"}, false, nil)
	require.Len(t, rep.ByDate, 2)
	// 18:00 sorts first, so 2024-01-02 is the first-seen date.
	assert.Equal(t, "2024-01-02", rep.ByDate[0].Date)
	assert.Len(t, rep.ByDate[0].Commits, 2)
	assert.Equal(t, "2024-01-01", rep.ByDate[1].Date)
}

func TestSummary(t *testing.T) {
	win := commit.Day("2024-01-01")

	rep := New(nil, win, false, nil)
	assert.Equal(t, "No commits found for this date", rep.Summary)

	one := []commit.Commit{mk("2024-01-01", "09:00:00", "fix: exactly this message", "Dev", "r")}
	rep = New(one, win, false, nil)
	assert.Equal(t, "fix: exactly this message", rep.Summary)

	three := []commit.Commit{
		mk("2024-01-01", "09:00:00", "feat: one", "Dev", "r"),
		mk("2024-01-01", "10:00:00", "feat: two", "Dev", "r"),
		mk("2024-01-01", "11:00:00", "random work", "Dev", "r"),
	}
	rep = New(three, win, false, nil)
	assert.Equal(t, "2 new features, 1 other changes", rep.Summary)
}

// style and chore commits carry no summary label; a report holding
// only those falls back to the commit count clause.
func TestSummaryLabellessFallback(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-01", "09:00:00", "chore: bump deps", "Dev", "r"),
		mk("2024-01-01", "10:00:00", "style: gofmt", "Dev", "r"),
	}
	rep := New(all, commit.Day("2024-01-01"), false, nil)
	assert.Equal(t, "2 commits completed", rep.Summary)
}

func TestTableView(t *testing.T) {
	all := []commit.Commit{
		mk("2024-01-02", "18:00:00", "feat: b1", "Dev One", "beta"),
		mk("2024-01-01", "17:00:00", "feat: a1", "Dev One", "alpha"),
		mk("2024-01-02", "09:00:00", "fix: b2", "Dev Two", "beta"),
	}

	rep := New(all, commit.Window{Start: "2024-01-01", End: "2024-01-02"}, false, nil)
	require.Len(t, rep.Table, 2)

	// Dates ascending in the table, regardless of group order.
	assert.Equal(t, "2024-01-01", rep.Table[0].Date)

	row := rep.Table[1]
	assert.Equal(t, "2024-01-02", row.Date)
	assert.Equal(t, "feat: b1 | fix: b2", row.Message)
	assert.Equal(t, "18:00:00, 09:00:00", row.Time)
	assert.Equal(t, "abcd1234, abcd1234", row.Hash)
	assert.Equal(t, "Dev One, Dev Two", row.Author)
	assert.Equal(t, "beta", row.Source)
	assert.Equal(t, 2, row.CommitCount)
}
