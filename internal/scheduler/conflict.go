// Package scheduler implements duplicate detection over the calendar's
// uniqueness key.
package scheduler

import (
	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// Duplicate details a collision that callers can present to users.
type Duplicate struct {
	WithEventID string
	Subject     string
	Start       chrono.Instant
}

// DetectDuplicate reports whether candidate collides with any event in
// existing, skipping the event whose ID equals excludeID. Two events collide
// when they share subject, start, and end; absent ends compare equal to each
// other and unequal to any concrete end.
func DetectDuplicate(existing []event.Event, candidate event.Event, excludeID string) (Duplicate, bool) {
	for _, ev := range existing {
		if excludeID != "" && ev.ID == excludeID {
			continue
		}
		if ev.Subject == candidate.Subject &&
			ev.Start.Equal(candidate.Start) &&
			event.EndsEqual(ev.End, candidate.End) {
			return Duplicate{WithEventID: ev.ID, Subject: ev.Subject, Start: ev.Start}, true
		}
	}
	return Duplicate{}, false
}
