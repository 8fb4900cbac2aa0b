package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// debounceWindow coalesces the burst of fsnotify events a single write produces.
const debounceWindow = 50 * time.Millisecond

// Watch reports changes to the store file made by any process.
// The parent directory is watched (the file itself is replaced by rename on
// every save). The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	_, statErr := os.Stat(r.Path)
	w := &storeWatcher{
		repo:    r,
		watcher: watcher,
		target:  filepath.Clean(r.Path),
		exists:  statErr == nil,
		out:     make(chan core.Event),
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.config.Logger.Error("store watcher stopped", "path", r.Path, "error", err)
	}))

	return w.out, nil
}

type storeWatcher struct {
	repo    *Repository
	watcher *fsnotify.Watcher
	target  string
	exists  bool
	out     chan core.Event
	pending *core.Event
}

func (w *storeWatcher) run(ctx context.Context) error {
	defer close(w.out)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if e, ok := w.classify(event); ok {
				w.merge(e)
				timer.Reset(debounceWindow)
			}

		case <-timer.C:
			if w.pending == nil {
				continue
			}
			e := *w.pending
			w.pending = nil
			select {
			case w.out <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// classify maps a raw fsnotify event on the store file to a store event.
// Events on other files in the directory (temp files, the lock) are dropped.
func (w *storeWatcher) classify(event fsnotify.Event) (core.Event, bool) {
	if filepath.Clean(event.Name) != w.target {
		return core.Event{}, false
	}
	w.repo.config.Logger.Debug("store event received", "op", event.Op.String())

	var t core.EventType
	switch {
	case event.Has(fsnotify.Create):
		t = core.EventCreate
		if w.exists {
			// Atomic saves land as a rename onto an existing file.
			t = core.EventModify
		}
		w.exists = true
	case event.Has(fsnotify.Write):
		t = core.EventModify
		w.exists = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
		w.exists = false
	default:
		return core.Event{}, false
	}

	return core.Event{Type: t, Path: w.repo.Path, Timestamp: time.Now().Unix()}, true
}

// merge folds e into the pending event. A create followed by writes stays
// a create; anything else takes the latest type.
func (w *storeWatcher) merge(e core.Event) {
	if w.pending != nil && w.pending.Type == core.EventCreate && e.Type == core.EventModify {
		w.pending.Timestamp = e.Timestamp
		return
	}
	w.pending = &e
}
