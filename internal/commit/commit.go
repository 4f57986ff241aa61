// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Gitdigest - Gitdigest collects commits across local and GitHub repositories, builds daily or range development reports, and delivers them to a Discord webhook.

Copyright (C) 2025  Gitdigest contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commit defines the canonical commit shape shared by every
// source adapter and by the report pipeline.
package commit

// HashLength is the truncation length applied to commit identifiers.
const HashLength = 8

// Commit is one normalized commit record. It is immutable once
// constructed: Hash holds the first 8 characters of the full
// identifier, Message holds the first line of the commit message only,
// and Date is always a zero-padded YYYY-MM-DD string so that date
// comparison can be done lexically.
type Commit struct {
	Hash       string `json:"hash"`
	Author     string `json:"author"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Message    string `json:"message"`
	SourceID   string `json:"repository,omitempty"`
	SourceName string `json:"repoName,omitempty"`
}

// Window is the inclusive date range over which commits are requested.
// A single-day window has Start == End.
type Window struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// Day returns a single-day window for the given date.
func Day(date string) Window {
	return Window{Start: date, End: date}
}

// Single reports whether the window covers exactly one calendar day.
func (w Window) Single() bool {
	return w.Start == w.End
}

// Contains reports whether the given YYYY-MM-DD date falls inside the
// window. Comparison is lexical, which is valid for zero-padded ISO
// dates.
func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}
