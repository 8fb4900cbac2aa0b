package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

// options holds the internal configuration for the note service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	adapter     string
	codec       fs.Codec
	strict      bool
	locking     bool
	lockTimeout time.Duration
	readOnly    bool
}

// Option defines a functional option for configuring the note service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:     "",
		lockTimeout: 5 * time.Second,
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, adapter selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
// Empty means detect from the path: .db and .sqlite use sqlite, anything
// else the file adapter.
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCodec forces the file adapter's encoding instead of picking it from
// the extension.
func WithCodec(c fs.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithStrict makes unreadable or corrupt stores an error instead of an
// empty collection.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLocking guards add and remove with the adapter's lock file. Adapters
// without a lock are used unlocked.
func WithLocking(enabled bool) Option {
	return func(o *options) {
		o.locking = enabled
	}
}

// WithLockTimeout bounds how long a mutation waits for the lock.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// WithReadOnly enables read-only mode: Add and Remove return
// core.ErrReadOnly, List and Read work as usual.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}
