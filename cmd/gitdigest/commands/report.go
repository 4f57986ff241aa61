package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/digestkit/gitdigest/cmd/gitdigest/internal/clierr"
	"github.com/digestkit/gitdigest/internal/commit"
	"github.com/digestkit/gitdigest/internal/config"
	"github.com/digestkit/gitdigest/internal/report"
	"github.com/digestkit/gitdigest/internal/source"
)

// NewReportCommand returns the `gitdigest report` command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [source...]",
		Short: "Build a commit report and post it to the Discord webhook",
		Long: `Fetches commits over a single date or a date range from the given
sources (local paths or GitHub URLs), aggregates them into a report and
delivers it to the configured Discord webhook. Sources can be passed as
arguments, via --repos as one comma- or newline-separated string, or
through the config file.`,
		RunE: runReport,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().String("author", "", "only include commits by this author")
	cmd.Flags().String("date", "", "single report date (YYYY-MM-DD, default: today)")
	cmd.Flags().String("end", "", "range end date (YYYY-MM-DD)")
	cmd.Flags().Bool("exclude-weekends", false, "drop commits dated on Saturday or Sunday")
	cmd.Flags().Bool("json", false, "print the full result as JSON")
	cmd.Flags().String("repos", "", "comma- or newline-separated source references")
	cmd.Flags().String("start", "", "range start date (YYYY-MM-DD)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	gen, cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, args, cfg)
	if err != nil {
		return clierr.Wrap(2, "invalid report request", err)
	}

	res := gen.Generate(cmd.Context(), req)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		data = append(data, '\n')
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	}

	if !res.Success {
		return clierr.New(1, res.Message)
	}
	return nil
}

// buildRequest merges flags, positional sources and config defaults
// into one report request.
func buildRequest(cmd *cobra.Command, args []string, cfg *config.Config) (report.Request, error) {
	date, _ := cmd.Flags().GetString("date")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	var win commit.Window
	switch {
	case start != "" || end != "":
		if date != "" {
			return report.Request{}, fmt.Errorf("--date cannot be combined with --start/--end")
		}
		if start == "" || end == "" {
			return report.Request{}, fmt.Errorf("a range report requires both --start and --end")
		}
		win = commit.Window{Start: start, End: end}
	case date != "":
		win = commit.Day(date)
	default:
		win = commit.Day(time.Now().Format("2006-01-02"))
	}

	refs := append([]string(nil), args...)
	if repos, _ := cmd.Flags().GetString("repos"); repos != "" {
		refs = append(refs, source.SplitRefs(repos)...)
	}
	if len(refs) == 0 {
		refs = cfg.Sources
	}

	author, _ := cmd.Flags().GetString("author")
	if author == "" {
		author = cfg.Author
	}

	excludeWeekends, _ := cmd.Flags().GetBool("exclude-weekends")
	if !cmd.Flags().Changed("exclude-weekends") {
		excludeWeekends = cfg.ExcludeWeekends
	}

	return report.Request{
		Window:          win,
		Sources:         refs,
		Author:          author,
		ExcludeWeekends: excludeWeekends,
	}, nil
}
