// Package history persists build reports in a local SQLite database,
// so past builds stay inspectable from the CLI.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Badpoolinator/strata-wiki/internal/site"
)

// Entry is one stored build report.
type Entry struct {
	ID         int64
	Report     *site.Report
	RecordedAt time.Time
}

// Store is a SQLite-backed build history.
// Use ":memory:" as the path for an ephemeral store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and if needed creates) the history database at the given
// path, creating parent directories for file-backed stores.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", path, err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		recorded_at INTEGER NOT NULL,
		report BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_build_id ON builds(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_recorded_at ON builds(recorded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one finished build report.
func (s *Store) Append(ctx context.Context, report *site.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, outcome, recorded_at, report) VALUES (?, ?, ?, ?)",
		report.BuildID, report.Outcome, time.Now().Unix(), payload,
	)
	if err != nil {
		return fmt.Errorf("insert build report: %w", err)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, recorded_at, report FROM builds ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query build history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var recordedUnix int64
		var payload []byte
		if err := rows.Scan(&entry.ID, &recordedUnix, &payload); err != nil {
			return nil, fmt.Errorf("scan build report: %w", err)
		}
		entry.RecordedAt = time.Unix(recordedUnix, 0)
		entry.Report = &site.Report{}
		if err := json.Unmarshal(payload, entry.Report); err != nil {
			return nil, fmt.Errorf("decode build report %d: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns the stored report for a build id, or sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, buildID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, recorded_at, report FROM builds WHERE build_id = ? ORDER BY id DESC LIMIT 1", buildID)

	var entry Entry
	var recordedUnix int64
	var payload []byte
	if err := row.Scan(&entry.ID, &recordedUnix, &payload); err != nil {
		return nil, err
	}
	entry.RecordedAt = time.Unix(recordedUnix, 0)
	entry.Report = &site.Report{}
	if err := json.Unmarshal(payload, entry.Report); err != nil {
		return nil, fmt.Errorf("decode build report %d: %w", entry.ID, err)
	}
	return &entry, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
