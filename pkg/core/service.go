package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ServiceConfig holds the behaviour switches of the note service.
type ServiceConfig struct {
	Logger   *slog.Logger
	ReadOnly bool // Add and Remove fail with ErrReadOnly
	Locking  bool // hold the repository lock, if it has one, across load/save of mutations
}

// Service handles the business logic for notes.
// Every operation is a self-contained load -> act -> (save) transaction;
// nothing is cached between calls.
type Service struct {
	repo   Repository
	config ServiceConfig
	mu     sync.RWMutex
	stats  serviceStats
}

type serviceStats struct {
	loads int
	saves int
}

// NewService creates a new Service.
func NewService(repo Repository, config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, config: config}
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// Add appends a new note. It fails with ErrDuplicateTitle, without writing,
// when a note with the same title already exists.
func (s *Service) Add(ctx context.Context, title, body string) error {
	if s.config.ReadOnly {
		return ErrReadOnly
	}

	return s.mutate(ctx, func(notes Collection) (Collection, bool, error) {
		if _, exists := notes.Find(title); exists {
			return nil, false, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
		return append(notes, Note{Title: title, Body: body}), true, nil
	})
}

// Remove deletes every note whose title equals title and returns how many
// were removed. When nothing matches it returns ErrNotFound and the store
// is left untouched.
func (s *Service) Remove(ctx context.Context, title string) (int, error) {
	if s.config.ReadOnly {
		return 0, ErrReadOnly
	}

	removed := 0
	err := s.mutate(ctx, func(notes Collection) (Collection, bool, error) {
		kept := notes.Without(title)
		removed = len(notes) - len(kept)
		if removed == 0 {
			return nil, false, fmt.Errorf("%w: %q", ErrNotFound, title)
		}
		return kept, true, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns all note titles in stored order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return notes.Titles(), nil
}

// Read returns the first note whose title equals title.
func (s *Service) Read(ctx context.Context, title string) (Note, error) {
	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}
	n, ok := notes.Find(title)
	if !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return n, nil
}

// Notes returns the whole collection, for callers that need bodies as well
// as titles (e.g. JSON listings).
func (s *Service) Notes(ctx context.Context) (Collection, error) {
	return s.load(ctx)
}

// Watch observes changes to the store if the repository supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// mutate runs one load -> fn -> save cycle. fn reports whether the returned
// collection must be written; an error from fn aborts without writing.
func (s *Service) mutate(ctx context.Context, fn func(Collection) (Collection, bool, error)) error {
	if s.config.Locking {
		if l, ok := s.repo.(Locker); ok {
			unlock, err := l.Lock(ctx)
			if err != nil {
				return err
			}
			defer unlock()
		} else {
			s.config.Logger.Debug("repository has no lock, mutating without one")
		}
	}

	notes, err := s.load(ctx)
	if err != nil {
		return err
	}

	next, changed, err := fn(notes)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnwritable, err)
	}
	s.record(func(st *serviceStats) { st.saves++ })
	s.config.Logger.Debug("notes saved", "count", len(next))
	return nil
}

func (s *Service) load(ctx context.Context) (Collection, error) {
	notes, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	s.record(func(st *serviceStats) { st.loads++ })
	if notes == nil {
		notes = Collection{}
	}
	s.config.Logger.Debug("notes loaded", "count", len(notes))
	return notes, nil
}

func (s *Service) record(fn func(*serviceStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.stats)
}
