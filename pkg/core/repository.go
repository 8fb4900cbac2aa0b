package core

import "context"

// Repository defines the contract for loading and saving the note collection.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (JSON file, YAML file, SQLite).
type Repository interface {
	// Load reads the full collection. A store that does not exist yet
	// yields an empty collection and no error.
	Load(ctx context.Context) (Collection, error)

	// Save replaces the persisted collection with c in a single write.
	Save(ctx context.Context, c Collection) error
}

// Locker is implemented by repositories that can guard a load/save cycle
// against other processes.
type Locker interface {
	// Lock blocks until the lock is held or ctx is done.
	Lock(ctx context.Context) (unlock func(), err error)
}

// Watchable is implemented by repositories that can report changes made to
// the store from outside the current process.
type Watchable interface {
	// Watch emits events until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan Event, error)
}
