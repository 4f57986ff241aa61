// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Gitdigest - Gitdigest collects commits across local and GitHub repositories, builds daily or range development reports, and delivers them to a Discord webhook.

Copyright (C) 2025  Gitdigest contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra subcommands for the gitdigest
// CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/digestkit/gitdigest/internal/config"
	"github.com/digestkit/gitdigest/internal/discord"
	"github.com/digestkit/gitdigest/internal/report"
	"github.com/digestkit/gitdigest/internal/source"
)

// NewRootCmd constructs the gitdigest root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("GITDIGEST_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "gitdigest",
		Short:         "gitdigest - commit reports delivered to Discord",
		Long:          "gitdigest fetches commits from local git checkouts and GitHub repositories over a date window, aggregates them into a development report, and posts it to a Discord webhook.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", "", "path to gitdigest.yaml (default: ./gitdigest.yaml when present)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of gitdigest",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gitdigest version %s\n", version)
		},
	})

	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}

// setup loads configuration and wires the pipeline for a command
// invocation.
func setup(cmd *cobra.Command) (*report.Generator, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	resolver := source.NewResolver(source.NewGitHubClient(cfg.GitHubToken), log)
	webhook := discord.NewWebhook(discord.Config{
		WebhookURL: cfg.WebhookURL,
		Username:   cfg.Username,
		AvatarURL:  cfg.AvatarURL,
	}, log)

	return report.NewGenerator(resolver, webhook, log), cfg, nil
}
