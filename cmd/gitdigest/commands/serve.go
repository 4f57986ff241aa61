package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/digestkit/gitdigest/internal/commit"
	"github.com/digestkit/gitdigest/internal/report"
	"github.com/digestkit/gitdigest/internal/source"
)

// NewServeCommand returns the `gitdigest serve` command: a thin HTTP
// trigger exposing the report pipeline at POST /api/report.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report generator over HTTP",
		Long:  "Starts an HTTP server exposing POST /api/report, which accepts a JSON report request and returns the generation result.",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8400", "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	gen, _, err := setup(cmd)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")

	mux := http.NewServeMux()
	mux.Handle("/api/report", reportHandler(gen.Generate))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
	return srv.ListenAndServe()
}

// apiRequest is the JSON body of POST /api/report. A single date and a
// start/end pair are mutually exclusive; sources may come as a list or
// as one separated string.
type apiRequest struct {
	Date            string   `json:"date,omitempty"`
	StartDate       string   `json:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty"`
	Repos           []string `json:"repos,omitempty"`
	RepoPath        string   `json:"repoPath,omitempty"`
	Author          string   `json:"author,omitempty"`
	ExcludeWeekends bool     `json:"excludeWeekends,omitempty"`
}

type reportFunc func(ctx context.Context, req report.Request) report.Result

// reportHandler adapts the generator to HTTP. Pipeline failures are
// carried inside the result object with a 200 status; only transport
// level problems (wrong method, undecodable body) map to error codes.
func reportHandler(generate reportFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var api apiRequest
		if err := json.NewDecoder(r.Body).Decode(&api); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		res := generate(r.Context(), api.toRequest())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
}

func (a apiRequest) toRequest() report.Request {
	var win commit.Window
	if a.Date != "" {
		win = commit.Day(a.Date)
	} else {
		win = commit.Window{Start: a.StartDate, End: a.EndDate}
	}

	refs := append([]string(nil), a.Repos...)
	if a.RepoPath != "" {
		refs = append(refs, source.SplitRefs(a.RepoPath)...)
	}

	return report.Request{
		Window:          win,
		Sources:         refs,
		Author:          a.Author,
		ExcludeWeekends: a.ExcludeWeekends,
	}
}
