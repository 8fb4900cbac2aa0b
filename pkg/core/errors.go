package core

import "errors"

// Common errors.
var (
	// ErrDuplicateTitle is returned by Add when a note with the same title exists.
	ErrDuplicateTitle = errors.New("note title taken")

	// ErrNotFound is returned by Remove and Read when no note matches.
	ErrNotFound = errors.New("note not found")

	// ErrStorageCorrupt is returned in strict mode when the store cannot be decoded.
	ErrStorageCorrupt = errors.New("note store is corrupt")

	// ErrStorageUnreadable is returned in strict mode when the store exists but cannot be read.
	ErrStorageUnreadable = errors.New("note store could not be read")

	// ErrStorageUnwritable wraps every failure to persist the collection.
	ErrStorageUnwritable = errors.New("note store could not be written")

	// ErrReadOnly is returned by Add and Remove when the service is read-only.
	ErrReadOnly = errors.New("note store is in read-only mode")

	// ErrLockTimeout is returned when the store lock is not acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for store lock")
)
