// Package sqlite implements the version cache on a local SQLite database so
// repeated checks do not burn GitHub API quota.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cajal/microns-kit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/cajal/microns-kit/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VersionCache = (*Store)(nil)

// Store is a SQLite-backed version cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a version cache at the specified data directory.
// If dataDir is empty, defaults to ~/.micronskit/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".micronskit", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies the embedded SQL files in lexical order.
func (s *Store) migrate(fsys fs.FS) error {
	entries, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
	}
	return nil
}

// Get returns the cached version for key if stored within maxAge.
func (s *Store) Get(ctx context.Context, key string, maxAge time.Duration) (string, bool, error) {
	var (
		version   string
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, fetched_at FROM version_cache WHERE key = ?`, key,
	).Scan(&version, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying version cache: %w", err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return "", false, nil
	}
	return version, true, nil
}

// Put stores or replaces the cached version for key.
func (s *Store) Put(ctx context.Context, key, version string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO version_cache (key, version, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET version = excluded.version, fetched_at = excluded.fetched_at`,
		key, version, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing version cache entry: %w", err)
	}
	return nil
}

// Purge removes all cached entries.
func (s *Store) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM version_cache`); err != nil {
		return fmt.Errorf("purging version cache: %w", err)
	}
	return nil
}
