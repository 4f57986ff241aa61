package commit

import "strings"

// Category classifies a commit by its message prefix, following the
// conventional-commit tags.
type Category string

const (
	CategoryFeat     Category = "feat"
	CategoryFix      Category = "fix"
	CategoryDocs     Category = "docs"
	CategoryStyle    Category = "style"
	CategoryRefactor Category = "refactor"
	CategoryTest     Category = "test"
	CategoryChore    Category = "chore"
	CategoryOther    Category = "other"
)

// categoryOrder is the prefix match order. First match wins, so
// "fix: docs: typo" is a fix, never docs.
var categoryOrder = []Category{
	CategoryFeat,
	CategoryFix,
	CategoryDocs,
	CategoryStyle,
	CategoryRefactor,
	CategoryTest,
	CategoryChore,
}

// summaryLabels maps categories to the human-readable clause used in
// report summaries. style and chore intentionally carry no label and
// never appear in summaries.
var summaryLabels = map[Category]string{
	CategoryFeat:     "new features",
	CategoryFix:      "bug fixes",
	CategoryDocs:     "documentation updates",
	CategoryRefactor: "refactoring tasks",
	CategoryTest:     "test updates",
	CategoryOther:    "other changes",
}

// Categorize returns the category of a commit message. Matching is
// case-insensitive and ordered; anything without a recognized prefix
// is CategoryOther.
func Categorize(message string) Category {
	lower := strings.ToLower(message)
	for _, cat := range categoryOrder {
		if strings.HasPrefix(lower, string(cat)+":") {
			return cat
		}
	}
	return CategoryOther
}

// SummaryLabel returns the summary clause label for a category and
// whether the category has one.
func SummaryLabel(cat Category) (string, bool) {
	label, ok := summaryLabels[cat]
	return label, ok
}
