package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// DefaultFile is the store file used when no path is configured.
const DefaultFile = "notes.json"

// Repository implements core.Repository on a single file holding the whole
// collection. It also implements core.Locker and core.Watchable.
type Repository struct {
	Path   string
	codec  Codec
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
	lastSave      *time.Time
	fallbacks     int
}

// Config holds the configuration for the file repository.
type Config struct {
	Path        string
	Strict      bool          // surface unreadable or corrupt files instead of treating them as empty
	LockTimeout time.Duration // zero waits until the context is done
	Codec       Codec         // nil picks one from the file extension
	Logger      *slog.Logger
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Path == "" {
		config.Path = DefaultFile
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	codec := config.Codec
	if codec == nil {
		codec = CodecFor(config.Path)
	}
	return &Repository{
		Path:   config.Path,
		codec:  codec,
		config: config,
	}
}

// Load reads and decodes the whole store file.
//
// A missing or blank file is an empty collection. Other read or decode
// failures also yield an empty collection unless Strict is set, in which
// case they are returned wrapping core.ErrStorageUnreadable or
// core.ErrStorageCorrupt.
func (r *Repository) Load(ctx context.Context) (core.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.config.Logger.Debug("store file not found, starting empty", "path", r.Path)
		r.touchLoad()
		return core.Collection{}, nil
	}
	if err != nil {
		return r.fallback(fmt.Errorf("%w: %w", core.ErrStorageUnreadable, err))
	}

	r.touchLoad()
	if len(bytes.TrimSpace(data)) == 0 {
		return core.Collection{}, nil
	}

	notes, err := r.codec.Decode(data)
	if err != nil {
		return r.fallback(fmt.Errorf("%w: %s: %v", core.ErrStorageCorrupt, r.Path, err))
	}
	if notes == nil {
		notes = core.Collection{}
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
	r.config.Logger.Warn("ignoring unreadable store, treating it as empty", "path", r.Path, "error", err)
	return core.Collection{}, nil
}

// Save encodes the collection and replaces the store file atomically,
// creating the parent directory if needed.
func (r *Repository) Save(ctx context.Context, c core.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.codec.Encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", r.Path, err)
	}

	r.config.Logger.Debug("writing store to disk", "path", r.Path, "count", len(c), "bytes", len(data))
	if err := replaceFile(r.Path, data); err != nil {
		return err
	}

	now := time.Now()
	r.mu.Lock()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

func (r *Repository) touchLoad() {
	now := time.Now()
	r.mu.Lock()
	r.lastLoad = &now
	r.mu.Unlock()
}

var _ core.Repository = (*Repository)(nil)
var _ core.Locker = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
