package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/adapters/sqlite"
	"github.com/aretw0/notes/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// New creates a note service for the store at path.
//
//	svc, err := notes.New("notes.json", notes.WithStrict(true))
func New(path string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := open(path, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(repo, core.ServiceConfig{
		Logger:   o.logger,
		ReadOnly: o.readOnly,
		Locking:  o.locking,
	}), nil
}

// Open returns the configured repository without wrapping it in a service.
func Open(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return open(path, o)
}

func open(path string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	if path == "" {
		path = fs.DefaultFile
	}

	adapter := o.adapter
	if adapter == "" {
		adapter = DetectAdapter(path)
	}

	switch adapter {
	case AdapterFS:
		return fs.NewRepository(fs.Config{
			Path:        path,
			Strict:      o.strict,
			LockTimeout: o.lockTimeout,
			Codec:       o.codec,
			Logger:      o.logger,
		}), nil
	case AdapterSQLite:
		return sqlite.NewRepository(sqlite.Config{
			Path:        path,
			Strict:      o.strict,
			LockTimeout: o.lockTimeout,
			Logger:      o.logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", adapter)
	}
}

// DetectAdapter picks the adapter name for a store path.
func DetectAdapter(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return AdapterSQLite
	default:
		return AdapterFS
	}
}
