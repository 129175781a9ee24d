package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"plexsweep/internal/actions"
	"plexsweep/internal/fsops"
	"plexsweep/internal/history"
	"plexsweep/internal/sweep"
)

func newSweepCommand(ctx *appContext) *cobra.Command {
	var forceDryRun bool
	var forceDelete bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the retention policies against all configured libraries",
		Long: `Run the retention policies against all configured libraries.

Interactive invocations simulate deletions so the plan can be reviewed
safely; non-interactive invocations (cron) delete for real. Use --delete or
--dry-run to force either behaviour.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceDryRun && forceDelete {
				return errors.New("--dry-run and --delete are mutually exclusive")
			}

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

			if err := cfg.EnsureStateDir(); err != nil {
				return err
			}
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another plexsweep run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			dryRun := resolveDryRun(forceDelete, forceDryRun, interactiveTerminal())

			var recorder sweep.Recorder
			if cfg.History.Enabled {
				store, err := history.Open(cfg.HistoryPath())
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer func() { _ = store.Close() }()
				recorder = store
			}

			executor := actions.NewExecutor(fsops.OSDeleter{}, dryRun, logger)
			sweeper, err := sweep.New(sweep.Options{
				Libraries: cfg.Libraries,
				Source:    client,
				Stat:      fsops.NewInspector(),
				Applier:   executor,
				Recorder:  recorder,
				Logger:    logger,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			summary, err := sweeper.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Deleted"
			if dryRun {
				verb = "Would delete"
			}
			fmt.Fprintf(out, "%s %d file(s) across %d library(ies)\n", verb, summary.Deleted, len(summary.Results))
			for _, result := range summary.Results {
				switch {
				case result.Skipped:
					fmt.Fprintf(out, "  %s: skipped (see log)\n", result.Library)
				case result.Aborted:
					fmt.Fprintf(out, "  %s: %d of %d file(s), aborted after delete failure\n", result.Library, result.Deleted, result.Files)
				default:
					fmt.Fprintf(out, "  %s: %d of %d file(s)\n", result.Library, result.Deleted, result.Files)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceDryRun, "dry-run", false, "Simulate deletions even when non-interactive")
	cmd.Flags().BoolVar(&forceDelete, "delete", false, "Delete files even when interactive")
	return cmd
}
