package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

// Options tunes the SQLite connection
type Options struct {
	BusyTimeoutMs int
	CacheSizeMB   int
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() *Options {
	return &Options{
		BusyTimeoutMs: 5000,
		CacheSizeMB:   64,
	}
}

// Store implements port.Store interface using SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements port.Store
var _ port.Store = (*Store)(nil)

// Open opens a connection to the SQLite database
func Open(dbPath string, opts *Options) (*Store, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Pragmas go in the DSN so every pooled connection gets them
	pragmas := []string{
		"journal_mode(WAL)",
		"synchronous(NORMAL)",
		"temp_store(MEMORY)",
		fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeoutMs),
		fmt.Sprintf("cache_size(%d)", -opts.CacheSizeMB*1000),
	}
	dsn := dbPath + "?_pragma=" + strings.Join(pragmas, "&_pragma=")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates or updates the database schema
func (s *Store) migrate() error {
	migrations := []string{
		// Category holds the storage code (0 software .. 3 electronics & control).
		// Prerequisites are a JSON array of strings.
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			head TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			category INTEGER NOT NULL,
			prerequisites TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_uri TEXT NOT NULL DEFAULT '',
			longitude REAL,
			latitude REAL,
			start_at TEXT,
			end_at TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_projects_category ON projects(category)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start_at ON events(start_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}

	return nil
}

// Stats returns catalog statistics
func (s *Store) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	stats := &domain.CatalogStats{
		ProjectsByCategory: make(map[domain.Category]int64, len(domain.Categories())),
	}
	for _, c := range domain.Categories() {
		stats.ProjectsByCategory[c] = 0
	}

	rows, err := s.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM projects GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code int
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, err
		}
		category, err := domain.CategoryFromCode(code)
		if err != nil {
			return nil, err
		}
		stats.ProjectsByCategory[category] = count
		stats.Projects += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&stats.Events); err != nil {
		return nil, err
	}

	return stats, nil
}

// withTx runs fn in a transaction and wraps any failure as a persistence error
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceError(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return persistenceError(op, err)
	}
	if err := tx.Commit(); err != nil {
		return persistenceError(op, err)
	}
	return nil
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
