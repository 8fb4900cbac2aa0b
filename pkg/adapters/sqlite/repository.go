// Package sqlite stores the note collection in a single SQLite table.
//
// The table mirrors the file format: rows are ordered by position and titles
// are not constrained to be unique, so the service keeps owning that rule.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/notes/internal/lockfile"
	"github.com/aretw0/notes/pkg/core"
)

const schema = `
	CREATE TABLE IF NOT EXISTS notes (
		pos   INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		body  TEXT NOT NULL
	);`

// Repository implements core.Repository and core.Locker on a SQLite
// database file.
type Repository struct {
	Path   string
	config Config

	mu        sync.Mutex
	db        *sql.DB
	saves     int
	fallbacks int
}

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path        string
	Strict      bool          // surface unreadable or corrupt databases instead of treating them as empty
	LockTimeout time.Duration // zero waits until the context is done
	Logger      *slog.Logger
}

// NewRepository prepares a repository for the database at config.Path.
// The database is opened lazily; a missing file reads as an empty collection.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{Path: config.Path, config: config}
}

// open returns the shared connection, creating the file and schema on demand.
// A file that is not a SQLite database fails with core.ErrStorageCorrupt.
func (r *Repository) open(ctx context.Context) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", core.ErrStorageCorrupt, r.Path, err)
	}

	r.db = db
	return db, nil
}

func (r *Repository) isOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db != nil
}

// Load reads every row in position order.
//
// A missing database is an empty collection. Other failures also yield an
// empty collection unless Strict is set.
func (r *Repository) Load(ctx context.Context) (core.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !r.isOpen() {
		info, err := os.Stat(r.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return core.Collection{}, nil
		case err != nil:
			return r.fallback(fmt.Errorf("%w: %w", core.ErrStorageUnreadable, err))
		case info.IsDir():
			return r.fallback(fmt.Errorf("%w: %s is a directory", core.ErrStorageUnreadable, r.Path))
		}
	}

	db, err := r.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return r.fallback(err)
	}

	notes, err := r.query(ctx, db)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return r.fallback(err)
	}

	r.config.Logger.Debug("notes loaded from sqlite", "path", r.Path, "count", len(notes))
	return notes, nil
}

func (r *Repository) query(ctx context.Context, db *sql.DB) (core.Collection, error) {
	rows, err := db.QueryContext(ctx, `SELECT title, body FROM notes ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notes: %v", core.ErrStorageCorrupt, err)
	}
	defer rows.Close()

	notes := core.Collection{}
	for rows.Next() {
		var n core.Note
		if err := rows.Scan(&n.Title, &n.Body); err != nil {
			return nil, fmt.Errorf("%w: scanning note: %v", core.ErrStorageCorrupt, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notes: %w", core.ErrStorageUnreadable, err)
	}
	return notes, nil
}

// fallback applies the unreadable-store policy.
func (r *Repository) fallback(err error) (core.Collection, error) {
	if r.config.Strict {
		return nil, err
	}
	r.mu.Lock()
	r.fallbacks++
	r.mu.Unlock()
	r.config.Logger.Warn("ignoring unreadable database, treating it as empty", "path", r.Path, "error", err)
	return core.Collection{}, nil
}

// LockPath returns the lock file guarding the database.
func (r *Repository) LockPath() string {
	return r.Path + lockfile.Suffix
}

// Lock acquires the lock file next to the database. It fails with
// core.ErrLockTimeout once LockTimeout elapses.
func (r *Repository) Lock(ctx context.Context) (func(), error) {
	unlock, err := lockfile.Acquire(ctx, r.LockPath(), r.config.LockTimeout)
	if err != nil {
		return nil, err
	}
	r.config.Logger.Debug("database lock acquired", "path", r.LockPath())
	return unlock, nil
}

// Save replaces the whole table in one transaction.
func (r *Repository) Save(ctx context.Context, c core.Collection) error {
	db, err := r.open(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clearing notes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO notes (pos, title, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range c {
		if _, err := stmt.ExecContext(ctx, i, n.Title, n.Body); err != nil {
			return fmt.Errorf("inserting note %q: %w", n.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notes: %w", err)
	}

	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return nil
}

// Close releases the database connection, if one was opened.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string `json:"path"`
	Strict    bool   `json:"strict"`
	Open      bool   `json:"open"`
	Saves     int    `json:"saves"`
	Fallbacks int    `json:"fallbacks"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		Path:      r.Path,
		Strict:    r.config.Strict,
		Open:      r.db != nil,
		Saves:     r.saves,
		Fallbacks: r.fallbacks,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ core.Repository = (*Repository)(nil)
var _ core.Locker = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
