package actions

import (
	"log/slog"

	"plexsweep/internal/retention"
	"plexsweep/internal/units"
)

// Deleter removes a file from the filesystem.
type Deleter interface {
	Remove(path string) error
}

// Executor applies retention decisions to files. In dry-run mode deletions
// are logged and reported as successful without touching the filesystem.
type Executor struct {
	deleter Deleter
	dryRun  bool
	logger  *slog.Logger
}

// NewExecutor builds an executor. The logger must not be nil.
func NewExecutor(deleter Deleter, dryRun bool, logger *slog.Logger) *Executor {
	return &Executor{deleter: deleter, dryRun: dryRun, logger: logger}
}

// DryRun reports whether the executor simulates deletions.
func (e *Executor) DryRun() bool { return e.dryRun }

// Apply performs one keep/delete decision and reports whether the file
// counts as deleted. Kept files log at debug so routine runs stay quiet;
// deletions and failures log at info and error.
func (e *Executor) Apply(action retention.Action, record retention.FileRecord) bool {
	attrs := []any{
		slog.String("path", record.Path),
		slog.Float64("rating", record.Rating),
		slog.Int64("age_seconds", record.AgeSeconds),
		slog.Int64("size_bytes", record.SizeBytes),
		slog.String("size", units.FormatBytes(record.SizeBytes)),
		slog.Int("views", record.ViewCount),
	}

	if action == retention.Keep {
		e.logger.Debug("keeping file", attrs...)
		return false
	}

	if e.dryRun {
		e.logger.Info("would delete file", attrs...)
		return true
	}

	if err := e.deleter.Remove(record.Path); err != nil {
		e.logger.Error("delete failed", append(attrs, slog.Any("error", err))...)
		return false
	}
	e.logger.Info("deleted file", attrs...)
	return true
}
