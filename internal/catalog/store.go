// Package catalog persists ingested dataset splits in SQLite so repeated
// preparation runs can be inspected and compared. Each ingest run records the
// manifest's (path, label) pairs under a split name with a run identifier.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"clipset/internal/config"
	"clipset/internal/manifest"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `
CREATE TABLE IF NOT EXISTS clips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    split TEXT NOT NULL,
    path TEXT NOT NULL,
    label INTEGER NOT NULL,
    run_id TEXT NOT NULL,
    ingested_at TEXT NOT NULL,
    UNIQUE(split, path)
);
CREATE INDEX IF NOT EXISTS idx_clips_split ON clips(split);
`

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.Paths.CatalogPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}

	return &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(dbPath + ".lock"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// WithLock runs fn while holding the catalog's file lock, so concurrent CLI
// ingests do not interleave.
func (s *Store) WithLock(fn func() error) error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return errors.New("another clipset ingest is already running")
	}
	defer func() {
		_ = s.lock.Unlock()
	}()
	return fn()
}

// IngestResult summarizes one ingest run.
type IngestResult struct {
	RunID    string
	Split    string
	Inserted int
}

// Ingest records every manifest entry under the split, replacing earlier
// rows for the same (split, path). Each call is tagged with a fresh run ID.
func (s *Store) Ingest(ctx context.Context, split string, m *manifest.Manifest, observe func(i int)) (*IngestResult, error) {
	split = strings.TrimSpace(split)
	if split == "" {
		return nil, errors.New("catalog: split name must not be empty")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	for i, path := range m.Paths {
		err := s.execWithRetry(ctx,
			`INSERT INTO clips (split, path, label, run_id, ingested_at)
             VALUES (?, ?, ?, ?, ?)
             ON CONFLICT(split, path) DO UPDATE SET
                 label = excluded.label,
                 run_id = excluded.run_id,
                 ingested_at = excluded.ingested_at`,
			split, path, m.Labels[i], runID, now,
		)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", path, err)
		}
		if observe != nil {
			observe(i)
		}
	}

	return &IngestResult{RunID: runID, Split: split, Inserted: m.Len()}, nil
}

// Stats describes one split's label distribution.
type Stats struct {
	Split  string
	Count  int
	Labels []LabelCount
}

// LabelCount is the number of clips carrying one label.
type LabelCount struct {
	Label int32
	Count int
}

// SplitStats tallies the clips recorded under a split.
func (s *Store) SplitStats(ctx context.Context, split string) (*Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, COUNT(*) FROM clips WHERE split = ? GROUP BY label ORDER BY label`, split)
	if err != nil {
		return nil, fmt.Errorf("query split stats: %w", err)
	}
	defer rows.Close()

	stats := &Stats{Split: split}
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan split stats: %w", err)
		}
		stats.Labels = append(stats.Labels, lc)
		stats.Count += lc.Count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate split stats: %w", err)
	}
	return stats, nil
}

// Splits lists every split name present in the catalog.
func (s *Store) Splits(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT split FROM clips`)
	if err != nil {
		return nil, fmt.Errorf("query splits: %w", err)
	}
	defer rows.Close()

	var splits []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan split name: %w", err)
		}
		splits = append(splits, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate splits: %w", err)
	}
	sort.Strings(splits)
	return splits, nil
}

// Prune removes every row recorded under the split. Returns the number of
// rows deleted.
func (s *Store) Prune(ctx context.Context, split string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clips WHERE split = ?`, split)
	if err != nil {
		return 0, fmt.Errorf("prune split %s: %w", split, err)
	}
	return res.RowsAffected()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
