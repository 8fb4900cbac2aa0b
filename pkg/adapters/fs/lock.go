package fs

import (
	"context"

	"github.com/aretw0/notes/internal/lockfile"
)

// LockSuffix is appended to the store path to name its lock file.
const LockSuffix = lockfile.Suffix

// LockPath returns the lock file guarding the store.
func (r *Repository) LockPath() string {
	return r.Path + LockSuffix
}

// Lock acquires the file-based lock next to the store. It retries until the
// lock file can be created exclusively, the context is done, or LockTimeout
// elapses (core.ErrLockTimeout).
func (r *Repository) Lock(ctx context.Context) (func(), error) {
	unlock, err := lockfile.Acquire(ctx, r.LockPath(), r.config.LockTimeout)
	if err != nil {
		return nil, err
	}
	r.config.Logger.Debug("store lock acquired", "path", r.LockPath())
	return unlock, nil
}
