package fs_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/notes/pkg/core"
)

func nextEvent(t *testing.T, ctx context.Context, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed early")
		return e
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}
	return core.Event{}
}

func TestWatch_StoreLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newRepo(t, "notes.json", false)
	svc := core.NewService(repo, core.ServiceConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := svc.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Add(ctx, "a", "x"))
	e := nextEvent(t, ctx, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, repo.Path, e.Path)

	require.NoError(t, svc.Add(ctx, "b", "y"))
	e = nextEvent(t, ctx, events)
	assert.Equal(t, core.EventModify, e.Type, "a save onto an existing file is a modification")

	require.NoError(t, os.Remove(repo.Path))
	e = nextEvent(t, ctx, events)
	assert.Equal(t, core.EventDelete, e.Type)

	cancel()
	for range events {
		// drain until the watcher closes the channel
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newRepo(t, "notes.json", false)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Watch(ctx)
	require.NoError(t, err)

	unlock, err := repo.Lock(ctx)
	require.NoError(t, err)
	unlock()

	select {
	case e := <-events:
		t.Fatalf("unexpected event %v", e)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	for range events {
	}
}
