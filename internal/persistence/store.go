// Package persistence defines the storage contract for the calendar's event
// collection.
package persistence

import (
	"context"

	"github.com/example/personal-calendar/internal/event"
)

// EventStore owns the event collection. Implementations preserve insertion
// order in ListEvents and apply each batch operation atomically: either the
// whole batch takes effect or the store is unchanged.
type EventStore interface {
	// ListEvents returns a copy of every stored event in insertion order.
	ListEvents(ctx context.Context) ([]event.Event, error)
	// InsertEvents appends the batch. An identifier collision, within the
	// batch or with stored events, fails with ErrDuplicateID and inserts
	// nothing.
	InsertEvents(ctx context.Context, events []event.Event) error
	// ReplaceEvents removes every event named in removeIDs and appends the
	// add batch. A missing identifier fails with ErrNotFound and changes
	// nothing. Replacement events take fresh insertion-order positions.
	ReplaceEvents(ctx context.Context, removeIDs []string, add []event.Event) error
}
