package sweep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"plexsweep/internal/config"
	"plexsweep/internal/fsops"
	"plexsweep/internal/history"
	"plexsweep/internal/retention"
	"plexsweep/internal/services/plex"
)

// MetadataSource supplies library contents and per-video metadata.
type MetadataSource interface {
	Sections(ctx context.Context) (map[string]string, error)
	Videos(ctx context.Context, sectionKey string) ([]plex.VideoSummary, error)
	VideoDetail(ctx context.Context, ratingKey string) (plex.VideoDetail, error)
}

// StatSource snapshots size and age for one file path.
type StatSource interface {
	Stat(path string) (fsops.Info, error)
}

// Recorder persists deletion ledger entries.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Options carries the collaborators a Sweeper needs.
type Options struct {
	Libraries map[string]config.Library
	Source    MetadataSource
	Stat      StatSource
	Applier   retention.Applier
	// Recorder is optional; nil disables the deletion ledger.
	Recorder Recorder
	Logger   *slog.Logger
	DryRun   bool
	// RunID tags log lines and ledger rows; a fresh UUID is generated
	// when empty.
	RunID string
}

// LibraryResult summarises one library within a run.
type LibraryResult struct {
	Library string
	Files   int
	Deleted int
	Aborted bool
	Skipped bool
}

// Summary is the outcome of a whole run.
type Summary struct {
	RunID   string
	Results []LibraryResult
	Deleted int
}

// Sweeper executes retention runs against a Plex server.
type Sweeper struct {
	libraries map[string]config.Library
	source    MetadataSource
	stat      StatSource
	applier   retention.Applier
	recorder  Recorder
	logger    *slog.Logger
	dryRun    bool
	runID     string
}

// New validates the options and builds a Sweeper.
func New(opts Options) (*Sweeper, error) {
	if opts.Source == nil || opts.Stat == nil || opts.Applier == nil || opts.Logger == nil {
		return nil, errors.New("sweep: source, stat, applier, and logger are required")
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Sweeper{
		libraries: opts.Libraries,
		source:    opts.Source,
		stat:      opts.Stat,
		applier:   opts.Applier,
		recorder:  opts.Recorder,
		logger:    opts.Logger.With(slog.String("component", "sweep"), slog.String("run_id", runID)),
		dryRun:    opts.DryRun,
		runID:     runID,
	}, nil
}

// RunID returns the identifier tagging this sweeper's log lines and ledger
// rows.
func (s *Sweeper) RunID() string { return s.runID }

// Run processes every configured library and returns the per-library
// results. Only a metadata fetch failure returns an error; skipped
// libraries are reported in the summary.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: s.runID}

	sections, err := s.source.Sections(ctx)
	if err != nil {
		return summary, fmt.Errorf("list library sections: %w", err)
	}

	for _, name := range s.sortedLibraries() {
		logger := s.logger.With(slog.String("library", name))

		sectionKey, ok := sections[name]
		if !ok {
			logger.Error("library not present on server; skipping")
			summary.Results = append(summary.Results, LibraryResult{Library: name, Skipped: true})
			continue
		}

		policy, err := s.libraries[name].Policy()
		if err != nil {
			logger.Error("invalid retention policy; skipping", slog.Any("error", err))
			summary.Results = append(summary.Results, LibraryResult{Library: name, Skipped: true})
			continue
		}
		evaluator, err := retention.NewEvaluator(policy)
		if err != nil {
			logger.Error("invalid retention policy; skipping", slog.Any("error", err))
			summary.Results = append(summary.Results, LibraryResult{Library: name, Skipped: true})
			continue
		}

		files, err := s.collect(ctx, sectionKey, logger)
		if err != nil {
			return summary, fmt.Errorf("fetch library %q: %w", name, err)
		}

		applier := retention.Applier(s.applier)
		if s.recorder != nil {
			applier = &recordingApplier{
				ctx:      ctx,
				inner:    s.applier,
				recorder: s.recorder,
				logger:   logger,
				runID:    s.runID,
				library:  name,
				dryRun:   s.dryRun,
			}
		}

		outcome := evaluator.Evaluate(files, applier)
		logger.Info("library cleanup finished",
			slog.Int("files", len(files)),
			slog.Int("deleted", outcome.Deleted),
			slog.Bool("aborted", outcome.Aborted),
			slog.Bool("dry_run", s.dryRun))

		summary.Results = append(summary.Results, LibraryResult{
			Library: name,
			Files:   len(files),
			Deleted: outcome.Deleted,
			Aborted: outcome.Aborted,
		})
		summary.Deleted += outcome.Deleted
	}
	return summary, nil
}

func (s *Sweeper) sortedLibraries() []string {
	names := make([]string, 0, len(s.libraries))
	for name := range s.libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Sweeper) collect(ctx context.Context, sectionKey string, logger *slog.Logger) (map[string]retention.FileRecord, error) {
	videos, err := s.source.Videos(ctx, sectionKey)
	if err != nil {
		return nil, err
	}

	files := make(map[string]retention.FileRecord)
	for _, video := range videos {
		if len(video.Files) == 0 {
			continue
		}
		detail, err := s.source.VideoDetail(ctx, video.RatingKey)
		if err != nil {
			return nil, err
		}
		for _, path := range video.Files {
			info, err := s.stat.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("file no longer on disk; dropping",
					slog.String("path", path), slog.String("title", video.Title))
				continue
			}
			if err != nil {
				logger.Warn("stat failed; dropping file",
					slog.String("path", path), slog.Any("error", err))
				continue
			}
			files[path] = retention.FileRecord{
				Path:       path,
				SizeBytes:  info.SizeBytes,
				AgeSeconds: info.AgeSeconds,
				Rating:     detail.UserRating,
				ViewCount:  video.ViewCount,
			}
		}
	}
	return files, nil
}

// recordingApplier forwards decisions to the executor and appends a ledger
// entry for every confirmed deletion. Ledger failures are logged, never
// fatal.
type recordingApplier struct {
	ctx      context.Context
	inner    retention.Applier
	recorder Recorder
	logger   *slog.Logger
	runID    string
	library  string
	dryRun   bool
}

func (a *recordingApplier) Apply(action retention.Action, record retention.FileRecord) bool {
	deleted := a.inner.Apply(action, record)
	if deleted {
		entry := history.Entry{
			RunID:      a.runID,
			Library:    a.library,
			Path:       record.Path,
			SizeBytes:  record.SizeBytes,
			Rating:     record.Rating,
			AgeSeconds: record.AgeSeconds,
			DryRun:     a.dryRun,
		}
		if err := a.recorder.Record(a.ctx, entry); err != nil {
			a.logger.Warn("record deletion history", slog.Any("error", err))
		}
	}
	return deleted
}
