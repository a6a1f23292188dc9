// Package event defines the calendar event entity and its series membership.
package event

import "github.com/example/personal-calendar/internal/chrono"

// Sentinel values stored when the caller provides no location or description.
const (
	DefaultLocation    = "No Location Provided"
	DefaultDescription = "No Description Provided"
)

// Status is the visibility of an event.
type Status string

const (
	StatusPublic  Status = "public"
	StatusPrivate Status = "private"
)

// ParseStatus maps user input onto a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPublic, StatusPrivate:
		return Status(s), true
	default:
		return "", false
	}
}

// Implied working window applied to all-day events.
var (
	allDayStartTime = chrono.MustTime(8, 0)
	allDayEndTime   = chrono.MustTime(17, 0)
)

// AllDayWindow returns the implied 08:00-17:00 window on d.
func AllDayWindow(d chrono.Date) (chrono.Instant, chrono.Instant) {
	return chrono.NewInstant(d, allDayStartTime), chrono.NewInstant(d, allDayEndTime)
}

// SeriesMembership ties an event to the recurrence series it was generated
// from. SeriesID is shared by all live members of one series;
// OriginalSeriesID records the series an event branched away from;
// IsException marks a member edited in isolation, which future-scope bulk
// edits skip.
type SeriesMembership struct {
	SeriesID         string
	OriginalSeriesID string
	IsException      bool
}

// Event is an immutable calendar entry. A nil End marks an all-day event,
// operationally the 08:00-17:00 window on the start date. A nil Series marks
// a standalone event. Mutation goes through the With helpers, which return
// modified copies.
type Event struct {
	ID          string
	Subject     string
	Location    string
	Description string
	Status      Status
	Start       chrono.Instant
	End         *chrono.Instant
	Series      *SeriesMembership
}

// Clone returns a deep copy sharing no pointers with e.
func (e Event) Clone() Event {
	out := e
	if e.End != nil {
		end := *e.End
		out.End = &end
	}
	if e.Series != nil {
		series := *e.Series
		out.Series = &series
	}
	return out
}

// InSeries reports whether e belongs to a recurrence series.
func (e Event) InSeries() bool { return e.Series != nil }

// SeriesID returns the series identifier, or "" for standalone events.
func (e Event) SeriesID() string {
	if e.Series == nil {
		return ""
	}
	return e.Series.SeriesID
}

// IsException reports whether e is a series member edited in isolation.
func (e Event) IsException() bool {
	return e.Series != nil && e.Series.IsException
}

// EffectiveEnd returns the concrete end instant, substituting the implied
// 17:00 end on the start date for all-day events.
func (e Event) EffectiveEnd() chrono.Instant {
	if e.End != nil {
		return *e.End
	}
	return chrono.NewInstant(e.Start.Date(), allDayEndTime)
}

// EndsEqual compares two optional end instants. Two absent ends are equal;
// an absent end never equals a concrete one.
func EndsEqual(a, b *chrono.Instant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// WithSubject returns a copy of e with the subject replaced.
func (e Event) WithSubject(subject string) Event {
	out := e.Clone()
	out.Subject = subject
	return out
}

// WithStart returns a copy of e with the start replaced.
func (e Event) WithStart(start chrono.Instant) Event {
	out := e.Clone()
	out.Start = start
	return out
}

// WithEnd returns a copy of e with a concrete end.
func (e Event) WithEnd(end chrono.Instant) Event {
	out := e.Clone()
	out.End = &end
	return out
}

// WithDescription returns a copy of e with the description replaced.
func (e Event) WithDescription(description string) Event {
	out := e.Clone()
	out.Description = description
	return out
}

// WithLocation returns a copy of e with the location replaced.
func (e Event) WithLocation(location string) Event {
	out := e.Clone()
	out.Location = location
	return out
}

// WithStatus returns a copy of e with the status replaced.
func (e Event) WithStatus(status Status) Event {
	out := e.Clone()
	out.Status = status
	return out
}

// WithSeries returns a copy of e with the series membership replaced.
// A nil membership makes the copy standalone.
func (e Event) WithSeries(m *SeriesMembership) Event {
	out := e.Clone()
	if m == nil {
		out.Series = nil
		return out
	}
	series := *m
	out.Series = &series
	return out
}
