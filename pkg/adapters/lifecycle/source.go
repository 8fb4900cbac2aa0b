// Package lifecycle bridges note store events into the lifecycle runtime.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notes/pkg/core"
)

type storeSource struct {
	events <-chan core.Event
	only   map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits store change events.
// When types are given, only events of those types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	var only map[core.EventType]bool
	if len(types) > 0 {
		only = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			only[t] = true
		}
	}
	return &storeSource{
		events: events,
		only:   only,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until the upstream channel closes or ctx is done,
// then closes Events().
func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.only != nil && !s.only[e.Type] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
