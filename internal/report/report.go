// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Gitdigest - Gitdigest collects commits across local and GitHub repositories, builds daily or range development reports, and delivers them to a Discord webhook.

Copyright (C) 2025  Gitdigest contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package report aggregates normalized commits into the report model
// and hosts the generate-report entry point.
package report

import "github.com/digestkit/gitdigest/internal/commit"

// SourceResult is the per-source outcome record. Created once per
// fetch attempt and never mutated; the Sources slice of a Report keeps
// request order.
type SourceResult struct {
	SourceID    string `json:"path"`
	SourceName  string `json:"name"`
	CommitCount int    `json:"commitCount"`
	Succeeded   bool   `json:"success"`
	ErrorDetail string `json:"error,omitempty"`
}

// DateGroup holds the commits of one calendar date. Group order in
// Report.ByDate is first-seen order over the time-sorted commit list.
type DateGroup struct {
	Date    string          `json:"date"`
	Commits []commit.Commit `json:"commits"`
}

// DateRow is one row of the grouped-by-date table view.
type DateRow struct {
	Date        string `json:"date"`
	Message     string `json:"message"`
	Time        string `json:"time"`
	Hash        string `json:"hash"`
	Author      string `json:"author"`
	Source      string `json:"repository"`
	CommitCount int    `json:"commitCount"`
}

// Report is the aggregate built once per request and immutable
// thereafter. Commits is ordered newest time-of-day first.
type Report struct {
	Window  commit.Window   `json:"window"`
	Commits []commit.Commit `json:"commits"`
	Summary string          `json:"summary"`
	Sources []SourceResult  `json:"sources"`
	ByDate  []DateGroup     `json:"groupedByDate"`
	Table   []DateRow       `json:"tableData"`
}
