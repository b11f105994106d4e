package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/config"
	"github.com/phantomsec/phantomscan/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived audit runs",
		Long: `History lists recent audit runs from the local archive.

The archive stores only summaries: source, redaction counts per category,
and the risk tier. Document content is never persisted.

Examples:
  # Show the 10 most recent runs
  phantomscan history

  # Show the last 50 runs as JSON
  phantomscan history --limit 50 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 10,
		"Maximum number of runs to show")
	cmd.Flags().BoolP("json", "j", false,
		"Output as JSON")
	cmd.Flags().String("archive-dir", "",
		"Archive directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return err
	}
	if archiveDir == "" {
		archiveDir = config.XDGDataDir()
	}

	// Reads only: a missing archive means nothing was audited yet.
	store, err := archive.Open(archiveDir, archive.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("no archive found (run an audit first): %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()

	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate archive: %w", err)
	}

	if asJSON {
		return writeHistoryJSON(cmd.OutOrStdout(), runs, stats)
	}

	writeHistoryText(cmd.OutOrStdout(), runs, stats)
	return nil
}

// writeHistoryJSON renders archived runs and statistics as indented JSON.
func writeHistoryJSON(out io.Writer, runs []*archive.Record, stats *archive.Stats) error {
	payload := struct {
		Runs       []*archive.Record `json:"runs"`
		Statistics *archive.Stats    `json:"statistics"`
	}{
		Runs:       runs,
		Statistics: stats,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// writeHistoryText renders archived runs as a human-readable listing.
func writeHistoryText(out io.Writer, runs []*archive.Record, stats *archive.Stats) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived audit runs.")
		return
	}

	fmt.Fprintf(out, "Recent audit runs (%d shown):\n\n", len(runs))
	for _, r := range runs {
		marker := " "
		if r.RiskTier == model.RiskHigh {
			marker = "!"
		}
		fmt.Fprintf(out, "%s #%-5d %s  %-30s redactions=%-4d tier=%s\n",
			marker, r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Source, r.TotalRedactions, r.RiskTier)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Archive totals: %d runs, %d redactions, %d high-risk runs\n",
		stats.TotalRuns, stats.TotalRedactions, stats.HighRiskRuns)
}
