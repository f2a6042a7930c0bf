package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/config"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/database"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent cleaning runs",
		Long: `History lists recent cleaning runs recorded in the local database.

Each entry shows when the run happened, which document was cleaned, where
the result was written, and how many characters were removed.

Examples:
  # Show the last 20 runs
  docx-cleaner history

  # Show the last 5 runs as JSON
  docx-cleaner history -n 5 --json`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history as JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Open read-only: a missing database just means nothing was cleaned yet.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No cleaning history yet.")
			return nil
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list cleaning history: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cleaning history yet.")
		return nil
	}

	for _, run := range runs {
		printRun(cmd, &run)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d run(s)\n", len(runs))

	return nil
}

// printRun prints a single history entry in a compact human-readable form.
func printRun(cmd *cobra.Command, run *model.CleanReport) {
	out := cmd.OutOrStdout()

	destination := run.OutputPath
	if run.DryRun {
		destination = "(dry run)"
	}

	fmt.Fprintf(out, "%s  %s -> %s  removed=%d\n",
		run.DateCleaned.Local().Format("2006-01-02 15:04:05"),
		run.InputPath,
		destination,
		run.TotalRemoved,
	)
}
