// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Gitdigest - Gitdigest collects commits across local and GitHub repositories, builds daily or range development reports, and delivers them to a Discord webhook.

Copyright (C) 2025  Gitdigest contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package discord renders reports as Discord embeds and delivers them
// to a webhook in rate-limit-aware batches.
package discord

import (
	"fmt"
	"time"

	"github.com/digestkit/gitdigest/internal/commit"
	"github.com/digestkit/gitdigest/internal/report"
)

const (
	// Discord caps an embed at 25 fields, a message at 10 embeds and
	// a field value at 1024 characters.
	MaxFieldsPerEmbed   = 25
	MaxEmbedsPerMessage = 10
	fieldValueLimit     = 1024

	colorActivity   = 0x00ff00
	colorNoActivity = 0xff6b6b
)

// Field is one (name, value) pair of an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Footer is the embed footer line.
type Footer struct {
	Text string `json:"text"`
}

// Embed is one paginated page of a report, serialized in the Discord
// webhook wire shape.
type Embed struct {
	Title       string  `json:"title"`
	Color       int     `json:"color"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
	Footer      Footer  `json:"footer"`
	Timestamp   string  `json:"timestamp"`
}

// BuildEmbeds paginates a report into embeds. Commits are walked in
// date-group order; each group contributes one date header field plus
// one field per commit, overflowing into "(Continued)" pages so that
// no embed ever exceeds 25 fields.
func BuildEmbeds(rep *report.Report, now time.Time) []Embed {
	title := reportTitle(rep.Window)
	total := len(rep.Commits)
	ts := now.UTC().Format(time.RFC3339)

	if total == 0 {
		return []Embed{newEmbed(title, colorNoActivity, rep.Summary, total, ts)}
	}

	var embeds []Embed
	current := newEmbed(title, colorActivity, rep.Summary, total, ts)
	count := 0

	continued := func() {
		embeds = append(embeds, current)
		current = newEmbed(title+" (Continued)", colorActivity, "Continued from previous page", total, ts)
		count = 0
	}

	for _, group := range rep.ByDate {
		// Start a fresh page when the date header plus its commits
		// cannot fit on what is left of this one.
		if count > 0 && count+1+len(group.Commits) > MaxFieldsPerEmbed {
			continued()
		}

		current.Fields = append(current.Fields, dateHeaderField(group))
		count++

		for _, c := range group.Commits {
			if count >= MaxFieldsPerEmbed {
				continued()
			}
			current.Fields = append(current.Fields, commitField(c))
			count++
		}
	}

	if len(current.Fields) > 0 {
		embeds = append(embeds, current)
	}
	return embeds
}

// Batch groups embeds into delivery batches of at most 10, preserving
// order.
func Batch(embeds []Embed) [][]Embed {
	var batches [][]Embed
	for len(embeds) > 0 {
		n := min(len(embeds), MaxEmbedsPerMessage)
		batches = append(batches, embeds[:n])
		embeds = embeds[n:]
	}
	return batches
}

func reportTitle(win commit.Window) string {
	if win.Single() {
		return fmt.Sprintf("📊 Daily Development Report - %s", win.Start)
	}
	return fmt.Sprintf("📊 Development Report - %s to %s", win.Start, win.End)
}

func newEmbed(title string, color int, description string, totalCommits int, timestamp string) Embed {
	return Embed{
		Title:       title,
		Color:       color,
		Description: description,
		Fields:      []Field{},
		Footer:      Footer{Text: fmt.Sprintf("Total commits: %d | Page 1/1", totalCommits)},
		Timestamp:   timestamp,
	}
}

func dateHeaderField(group report.DateGroup) Field {
	plural := ""
	if len(group.Commits) > 1 {
		plural = "s"
	}
	return Field{
		Name:  fmt.Sprintf("📅 **%s**", group.Date),
		Value: fmt.Sprintf("*%d commit%s on this date*", len(group.Commits), plural),
	}
}

func commitField(c commit.Commit) Field {
	repoInfo := ""
	if c.SourceName != "" {
		repoInfo = fmt.Sprintf(" (%s)", c.SourceName)
	}
	value := fmt.Sprintf("**%s**\n`%s` by **%s**", c.Message, c.Hash, c.Author)
	return Field{
		Name:  fmt.Sprintf("📝 %s%s", c.Time, repoInfo),
		Value: truncate(value, fieldValueLimit),
	}
}

// truncate shortens a value to the Discord field limit, counting
// runes, with a "..." suffix.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
