// Package memory provides the in-process event store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/persistence"
)

// Store keeps events in a slice, preserving insertion order.
type Store struct {
	mu     sync.RWMutex
	events []event.Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// ListEvents returns a deep copy of every stored event in insertion order.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Clone())
	}
	return out, nil
}

// InsertEvents appends the batch, or inserts nothing on an ID collision.
func (s *Store) InsertEvents(ctx context.Context, events []event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if _, ok := seen[ev.ID]; ok {
			return fmt.Errorf("%w: %s", persistence.ErrDuplicateID, ev.ID)
		}
		seen[ev.ID] = struct{}{}
		if s.indexOfLocked(ev.ID) >= 0 {
			return fmt.Errorf("%w: %s", persistence.ErrDuplicateID, ev.ID)
		}
	}

	for _, ev := range events {
		s.events = append(s.events, ev.Clone())
	}
	return nil
}

// ReplaceEvents removes every event in removeIDs and appends the add batch.
// A missing identifier leaves the store unchanged.
func (s *Store) ReplaceEvents(ctx context.Context, removeIDs []string, add []event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removal := make(map[string]struct{}, len(removeIDs))
	for _, id := range removeIDs {
		if s.indexOfLocked(id) < 0 {
			return fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
		}
		removal[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(add))
	for _, ev := range add {
		if _, ok := seen[ev.ID]; ok {
			return fmt.Errorf("%w: %s", persistence.ErrDuplicateID, ev.ID)
		}
		seen[ev.ID] = struct{}{}
		if _, removed := removal[ev.ID]; removed {
			continue
		}
		if s.indexOfLocked(ev.ID) >= 0 {
			return fmt.Errorf("%w: %s", persistence.ErrDuplicateID, ev.ID)
		}
	}

	kept := make([]event.Event, 0, len(s.events)-len(removal)+len(add))
	for _, ev := range s.events {
		if _, removed := removal[ev.ID]; removed {
			continue
		}
		kept = append(kept, ev)
	}
	for _, ev := range add {
		kept = append(kept, ev.Clone())
	}
	s.events = kept
	return nil
}

func (s *Store) indexOfLocked(id string) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
