package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plexsweep/internal/history"
	"plexsweep/internal/units"
)

func newHistoryCommand(ctx *appContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent deletions from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No deletions recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				mode := "deleted"
				if entry.DryRun {
					mode = "dry-run"
				}
				rows = append(rows, []string{
					entry.DeletedAt.Local().Format(time.DateTime),
					entry.Library,
					entry.Path,
					units.FormatBytes(entry.SizeBytes),
					mode,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Library", "File", "Size", "Mode"},
				rows, 3))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}
