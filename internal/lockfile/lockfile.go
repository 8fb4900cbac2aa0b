// Package lockfile implements the exclusive lock file that guards a store
// between processes.
package lockfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// Suffix is appended to the store path to name its lock file.
const Suffix = ".lock"

const retryInterval = 10 * time.Millisecond

// Acquire creates path exclusively, retrying until it succeeds, ctx is done,
// or timeout elapses (core.ErrLockTimeout). A zero timeout waits on ctx only.
// The returned func removes the lock file.
func Acquire(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(path)
			}, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", core.ErrLockTimeout, path)
			}
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
