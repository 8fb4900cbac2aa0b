package notes

import (
	"log/slog"
	"time"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

// --- Types ---

// Note is a title/body pair.
type Note = core.Note

// Collection is the ordered set of notes held by a store.
type Collection = core.Collection

// Service runs the add/remove/list/read operations against a store.
type Service = core.Service

// --- Errors ---

var (
	ErrDuplicateTitle    = core.ErrDuplicateTitle
	ErrNotFound          = core.ErrNotFound
	ErrStorageCorrupt    = core.ErrStorageCorrupt
	ErrStorageUnreadable = core.ErrStorageUnreadable
	ErrStorageUnwritable = core.ErrStorageUnwritable
	ErrReadOnly          = core.ErrReadOnly
	ErrLockTimeout       = core.ErrLockTimeout
)

// --- Configuration ---

// Option defines a functional option for configuring the store.
type Option = platform.Option

// DefaultFile is the store used when no path is given.
const DefaultFile = fs.DefaultFile

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStrict reports corrupt or unreadable stores instead of treating them as empty.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithLocking guards add and remove with the store's lock file, when the
// adapter has one.
func WithLocking(enabled bool) Option {
	return platform.WithLocking(enabled)
}

// WithLockTimeout bounds how long a mutation waits for the lock.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// WithReadOnly rejects add and remove.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// --- Factory ---

// New creates a note service for the store at path.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Open returns the storage adapter for path without a service around it.
func Open(path string, opts ...Option) (core.Repository, error) {
	return platform.Open(path, opts...)
}
