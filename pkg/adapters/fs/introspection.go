package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	LockPath      string     `json:"lock_path"`
	Format        string     `json:"format"`
	Strict        bool       `json:"strict"`
	WatcherActive bool       `json:"watcher_active"`
	Fallbacks     int        `json:"fallbacks"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
	LastSave      *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		LockPath:      r.LockPath(),
		Format:        r.codec.Name(),
		Strict:        r.config.Strict,
		WatcherActive: r.watcherActive,
		Fallbacks:     r.fallbacks,
		LastLoad:      r.lastLoad,
		LastSave:      r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
