package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded deletion.
type Entry struct {
	RunID      string
	Library    string
	Path       string
	SizeBytes  int64
	Rating     float64
	AgeSeconds int64
	DryRun     bool
	DeletedAt  time.Time
}

// Store manages the deletion ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS deletions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	library     TEXT NOT NULL,
	path        TEXT NOT NULL,
	size_bytes  INTEGER NOT NULL,
	rating      REAL NOT NULL,
	age_seconds INTEGER NOT NULL,
	dry_run     INTEGER NOT NULL,
	deleted_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deletions_run ON deletions(run_id);
`

const (
	busyRetryAttempts = 5
	busyRetryBackoff  = 10 * time.Millisecond
)

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record appends one deletion to the ledger.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	deletedAt := entry.DeletedAt
	if deletedAt.IsZero() {
		deletedAt = time.Now()
	}
	return s.execWithRetry(ctx,
		`INSERT INTO deletions (run_id, library, path, size_bytes, rating, age_seconds, dry_run, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Library, entry.Path, entry.SizeBytes, entry.Rating,
		entry.AgeSeconds, boolToInt(entry.DryRun), deletedAt.UTC().Format(time.RFC3339))
}

// Recent returns the newest limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, library, path, size_bytes, rating, age_seconds, dry_run, deleted_at
		 FROM deletions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var dryRun int
		var deletedAt string
		if err := rows.Scan(&entry.RunID, &entry.Library, &entry.Path, &entry.SizeBytes,
			&entry.Rating, &entry.AgeSeconds, &dryRun, &deletedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.DryRun = dryRun != 0
		if parsed, err := time.Parse(time.RFC3339, deletedAt); err == nil {
			entry.DeletedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	delay := busyRetryBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil || !isBusy(lastErr) {
			return lastErr
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return lastErr
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
