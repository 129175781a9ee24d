package sweep

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"testing"

	"plexsweep/internal/config"
	"plexsweep/internal/fsops"
	"plexsweep/internal/history"
	"plexsweep/internal/retention"
	"plexsweep/internal/services/plex"
)

type fakeSource struct {
	sections    map[string]string
	videos      map[string][]plex.VideoSummary
	details     map[string]plex.VideoDetail
	sectionsErr error
	videosErr   error
	detailErr   error
}

func (f *fakeSource) Sections(context.Context) (map[string]string, error) {
	return f.sections, f.sectionsErr
}

func (f *fakeSource) Videos(_ context.Context, sectionKey string) ([]plex.VideoSummary, error) {
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	return f.videos[sectionKey], nil
}

func (f *fakeSource) VideoDetail(_ context.Context, ratingKey string) (plex.VideoDetail, error) {
	if f.detailErr != nil {
		return plex.VideoDetail{}, f.detailErr
	}
	return f.details[ratingKey], nil
}

type fakeStat struct {
	infos map[string]fsops.Info
}

func (f *fakeStat) Stat(path string) (fsops.Info, error) {
	info, ok := f.infos[path]
	if !ok {
		return fsops.Info{}, fs.ErrNotExist
	}
	return info, nil
}

// countingApplier confirms every delete and records the order.
type countingApplier struct {
	deleted []string
	kept    []string
}

func (a *countingApplier) Apply(action retention.Action, record retention.FileRecord) bool {
	if action == retention.Delete {
		a.deleted = append(a.deleted, record.Path)
		return true
	}
	a.kept = append(a.kept, record.Path)
	return false
}

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, entry history.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func movieSource() *fakeSource {
	return &fakeSource{
		sections: map[string]string{"Movies": "1"},
		videos: map[string][]plex.VideoSummary{
			"1": {
				{RatingKey: "101", Title: "Old Favorite", ViewCount: 4, Files: []string{"/m/favorite.mkv"}},
				{RatingKey: "102", Title: "Stale", ViewCount: 1, Files: []string{"/m/stale.mkv"}},
				{RatingKey: "103", Title: "Fresh", ViewCount: 2, Files: []string{"/m/fresh.mkv"}},
			},
		},
		details: map[string]plex.VideoDetail{
			"101": {UserRating: 9},
			"102": {},
			"103": {UserRating: 6},
		},
	}
}

func movieStat() *fakeStat {
	return &fakeStat{infos: map[string]fsops.Info{
		"/m/favorite.mkv": {SizeBytes: 4000, AgeSeconds: 9000},
		"/m/stale.mkv":    {SizeBytes: 2000, AgeSeconds: 5000},
		"/m/fresh.mkv":    {SizeBytes: 1000, AgeSeconds: 100},
	}}
}

func newSweeper(t *testing.T, opts Options) *Sweeper {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testLogger()
	}
	sweeper, err := New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return sweeper
}

func TestRunDeletesPerPolicy(t *testing.T) {
	applier := &countingApplier{}
	recorder := &fakeRecorder{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 2}},
		Source:    movieSource(),
		Stat:      movieStat(),
		Applier:   applier,
		Recorder:  recorder,
		RunID:     "run-test",
	})

	summary, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Deleted != 1 {
		t.Fatalf("Deleted = %d, want 1", summary.Deleted)
	}
	// The unrated file sorts first regardless of age.
	if len(applier.deleted) != 1 || applier.deleted[0] != "/m/stale.mkv" {
		t.Fatalf("deleted %v, want [/m/stale.mkv]", applier.deleted)
	}
	if len(applier.kept) != 2 {
		t.Fatalf("kept %v, want 2 files", applier.kept)
	}

	if len(recorder.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.RunID != "run-test" || entry.Library != "Movies" || entry.Path != "/m/stale.mkv" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.SizeBytes != 2000 || entry.AgeSeconds != 5000 {
		t.Fatalf("entry stats = %+v", entry)
	}
}

func TestRunProcessesLibrariesInSortedOrder(t *testing.T) {
	source := movieSource()
	source.sections["Archive"] = "2"
	source.videos["2"] = []plex.VideoSummary{
		{RatingKey: "201", ViewCount: 1, Files: []string{"/a/old.mkv"}},
	}
	source.details["201"] = plex.VideoDetail{}

	stat := movieStat()
	stat.infos["/a/old.mkv"] = fsops.Info{SizeBytes: 500, AgeSeconds: 1000}

	applier := &countingApplier{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{
			"Movies":  {MaxAge: "1 day"},
			"Archive": {MaxAge: "1 min"},
		},
		Source:  source,
		Stat:    stat,
		Applier: applier,
	})

	summary, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(summary.Results))
	}
	if summary.Results[0].Library != "Archive" || summary.Results[1].Library != "Movies" {
		t.Fatalf("library order = %v, %v", summary.Results[0].Library, summary.Results[1].Library)
	}
}

func TestRunSkipsMissingLibrary(t *testing.T) {
	applier := &countingApplier{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{
			"Movies": {MaxCount: 2},
			"Ghosts": {MaxCount: 1},
		},
		Source:  movieSource(),
		Stat:    movieStat(),
		Applier: applier,
	})

	summary, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var ghosts, movies *LibraryResult
	for i := range summary.Results {
		switch summary.Results[i].Library {
		case "Ghosts":
			ghosts = &summary.Results[i]
		case "Movies":
			movies = &summary.Results[i]
		}
	}
	if ghosts == nil || !ghosts.Skipped {
		t.Fatalf("Ghosts result = %+v, want skipped", ghosts)
	}
	if movies == nil || movies.Skipped || movies.Deleted != 1 {
		t.Fatalf("Movies result = %+v, want processed", movies)
	}
}

func TestRunSkipsInvalidPolicy(t *testing.T) {
	applier := &countingApplier{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{
			"Movies": {MaxCount: 2, MaxAge: "1 day"},
		},
		Source:  movieSource(),
		Stat:    movieStat(),
		Applier: applier,
	})

	summary, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Results) != 1 || !summary.Results[0].Skipped {
		t.Fatalf("results = %+v, want single skipped library", summary.Results)
	}
	if len(applier.deleted)+len(applier.kept) != 0 {
		t.Fatal("skipped library still visited files")
	}
}

func TestRunAbortsOnFetchError(t *testing.T) {
	source := movieSource()
	source.videosErr = errors.New("server returned 500")

	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 2}},
		Source:    source,
		Stat:      movieStat(),
		Applier:   &countingApplier{},
	})

	if _, err := sweeper.Run(context.Background()); err == nil {
		t.Fatal("expected fetch error to abort the run")
	}
}

func TestRunAbortsOnSectionsError(t *testing.T) {
	source := movieSource()
	source.sectionsErr = errors.New("connection refused")

	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 2}},
		Source:    source,
		Stat:      movieStat(),
		Applier:   &countingApplier{},
	})

	if _, err := sweeper.Run(context.Background()); err == nil {
		t.Fatal("expected sections error to abort the run")
	}
}

func TestRunDropsVanishedFiles(t *testing.T) {
	stat := movieStat()
	delete(stat.infos, "/m/stale.mkv")

	applier := &countingApplier{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 2}},
		Source:    movieSource(),
		Stat:      stat,
		Applier:   applier,
	})

	summary, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Only two files remain, which is within the count limit.
	if summary.Results[0].Files != 2 || summary.Deleted != 0 {
		t.Fatalf("result = %+v", summary.Results[0])
	}
}

func TestRunRecordsDryRunFlag(t *testing.T) {
	recorder := &fakeRecorder{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 2}},
		Source:    movieSource(),
		Stat:      movieStat(),
		Applier:   &countingApplier{},
		Recorder:  recorder,
		DryRun:    true,
	})

	if _, err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(recorder.entries) != 1 || !recorder.entries[0].DryRun {
		t.Fatalf("entries = %+v, want one dry-run entry", recorder.entries)
	}
}

func TestPlanListsDeletionsWithoutSideEffects(t *testing.T) {
	applier := &countingApplier{}
	recorder := &fakeRecorder{}
	sweeper := newSweeper(t, Options{
		Libraries: map[string]config.Library{"Movies": {MaxCount: 1}},
		Source:    movieSource(),
		Stat:      movieStat(),
		Applier:   applier,
		Recorder:  recorder,
	})

	planned, err := sweeper.Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	if len(planned) != 2 {
		t.Fatalf("planned %d deletions, want 2", len(planned))
	}
	// Unrated file first, then lowest-rated.
	if planned[0].Record.Path != "/m/stale.mkv" || planned[1].Record.Path != "/m/fresh.mkv" {
		t.Fatalf("planned order = %v, %v", planned[0].Record.Path, planned[1].Record.Path)
	}
	if len(applier.deleted) != 0 || len(recorder.entries) != 0 {
		t.Fatal("plan touched the applier or the ledger")
	}
}
