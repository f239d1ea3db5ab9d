package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lectern/pkg/lectern/store"
)

// sqliteStore implements store.Cache using SQLite
type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens a SQLite extraction cache with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS extracts (
	path TEXT PRIMARY KEY,
	size INTEGER NOT NULL,
	mod_time_ns INTEGER NOT NULL,
	pages TEXT NOT NULL,
	extracted_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// GetPages returns the cached pages when path, size and mtime all match
func (s *sqliteStore) GetPages(ctx context.Context, key store.Key) ([]string, bool, error) {
	var (
		size      int64
		modTimeNS int64
		pagesJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT size, mod_time_ns, pages FROM extracts WHERE path = ?`,
		key.Path,
	).Scan(&size, &modTimeNS, &pagesJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if size != key.Size || modTimeNS != key.ModTime.UnixNano() {
		return nil, false, nil
	}

	var pages []string
	if err := json.Unmarshal([]byte(pagesJSON), &pages); err != nil {
		return nil, false, fmt.Errorf("decode cached pages for %s: %w", key.Path, err)
	}
	return pages, true, nil
}

// PutPages inserts or replaces the cached pages for a file
func (s *sqliteStore) PutPages(ctx context.Context, key store.Key, pages []string) error {
	if pages == nil {
		pages = []string{}
	}
	data, err := json.Marshal(pages)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO extracts (path, size, mod_time_ns, pages, extracted_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	size=excluded.size,
	mod_time_ns=excluded.mod_time_ns,
	pages=excluded.pages,
	extracted_at=excluded.extracted_at;
`
	_, err = s.db.ExecContext(ctx, stmt,
		key.Path,
		key.Size,
		key.ModTime.UnixNano(),
		string(data),
		s.now().UTC().Format(time.RFC3339),
	)
	return err
}

// Delete drops the cached entry for path
func (s *sqliteStore) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM extracts WHERE path = ?`, path)
	return err
}

// Len returns the number of cached files
func (s *sqliteStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM extracts`).Scan(&n)
	return n, err
}
