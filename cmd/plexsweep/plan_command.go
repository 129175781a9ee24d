package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"plexsweep/internal/actions"
	"plexsweep/internal/fsops"
	"plexsweep/internal/sweep"
	"plexsweep/internal/units"
)

func newPlanCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show which files a sweep would delete, without touching anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.plexClient()
			if err != nil {
				return err
			}

			// The plan path never invokes the applier; a quiet dry-run
			// executor satisfies the sweeper's wiring.
			executor := actions.NewExecutor(fsops.OSDeleter{}, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
			sweeper, err := sweep.New(sweep.Options{
				Libraries: cfg.Libraries,
				Source:    client,
				Stat:      fsops.NewInspector(),
				Applier:   executor,
				Logger:    logger,
				DryRun:    true,
			})
			if err != nil {
				return err
			}

			planned, err := sweeper.Plan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(planned) == 0 {
				fmt.Fprintln(out, "Nothing to delete; all libraries are within their limits.")
				return nil
			}

			var totalBytes int64
			rows := make([][]string, 0, len(planned))
			for _, deletion := range planned {
				record := deletion.Record
				totalBytes += record.SizeBytes
				rows = append(rows, []string{
					deletion.Library,
					record.Path,
					strconv.FormatFloat(record.Rating, 'f', -1, 64),
					formatAge(record.AgeSeconds),
					units.FormatBytes(record.SizeBytes),
					strconv.Itoa(record.ViewCount),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Library", "File", "Rating", "Age", "Size", "Views"},
				rows, 2, 3, 4, 5))
			fmt.Fprintf(out, "%d file(s), %s total\n", len(planned), units.FormatBytes(totalBytes))
			return nil
		},
	}
}
