package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"plexsweep/internal/retention"
)

// PlannedDeletion is one file a run would delete.
type PlannedDeletion struct {
	Library string
	Record  retention.FileRecord
}

// Plan computes the deletions a run would perform without touching the
// filesystem or the ledger. Library skip rules match Run.
func (s *Sweeper) Plan(ctx context.Context) ([]PlannedDeletion, error) {
	sections, err := s.source.Sections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list library sections: %w", err)
	}

	var planned []PlannedDeletion
	for _, name := range s.sortedLibraries() {
		logger := s.logger.With(slog.String("library", name))

		sectionKey, ok := sections[name]
		if !ok {
			logger.Error("library not present on server; skipping")
			continue
		}
		policy, err := s.libraries[name].Policy()
		if err != nil {
			logger.Error("invalid retention policy; skipping", slog.Any("error", err))
			continue
		}
		evaluator, err := retention.NewEvaluator(policy)
		if err != nil {
			logger.Error("invalid retention policy; skipping", slog.Any("error", err))
			continue
		}

		files, err := s.collect(ctx, sectionKey, logger)
		if err != nil {
			return nil, fmt.Errorf("fetch library %q: %w", name, err)
		}

		collector := &planApplier{}
		evaluator.Evaluate(files, collector)
		for _, record := range collector.deletes {
			planned = append(planned, PlannedDeletion{Library: name, Record: record})
		}
	}
	return planned, nil
}

// planApplier accepts every delete decision so the evaluator walks the same
// files a live run would, while recording instead of removing.
type planApplier struct {
	deletes []retention.FileRecord
}

func (a *planApplier) Apply(action retention.Action, record retention.FileRecord) bool {
	if action == retention.Delete {
		a.deletes = append(a.deletes, record)
		return true
	}
	return false
}
