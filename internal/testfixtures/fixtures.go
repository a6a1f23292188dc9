package testfixtures

import (
	"fmt"
	"sync/atomic"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

var eventCounter uint64

// EventOption configures the generated event fixture.
type EventOption func(*event.Event)

// WithSubject overrides the fixture subject.
func WithSubject(subject string) EventOption {
	return func(ev *event.Event) { ev.Subject = subject }
}

// WithStart overrides the fixture start instant.
func WithStart(start chrono.Instant) EventOption {
	return func(ev *event.Event) { ev.Start = start }
}

// WithEnd overrides the fixture end instant. A nil end makes the fixture
// all-day.
func WithEnd(end *chrono.Instant) EventOption {
	return func(ev *event.Event) { ev.End = end }
}

// WithSeries attaches series membership to the fixture.
func WithSeries(membership *event.SeriesMembership) EventOption {
	return func(ev *event.Event) { ev.Series = membership }
}

// NewEvent returns a deterministic timed event fixture with optional
// overrides. Successive calls land on successive days so default fixtures
// never collide.
func NewEvent(opts ...EventOption) event.Event {
	idx := atomic.AddUint64(&eventCounter, 1)
	startDate := chrono.MustDate(3, 6, 2024).Advance(int(idx))
	start := chrono.NewInstant(startDate, chrono.MustTime(10, 0))
	end := chrono.NewInstant(startDate, chrono.MustTime(11, 0))
	ev := event.Event{
		ID:          fmt.Sprintf("event-%03d", idx),
		Subject:     fmt.Sprintf("Event %03d", idx),
		Location:    event.DefaultLocation,
		Description: event.DefaultDescription,
		Status:      event.StatusPublic,
		Start:       start,
		End:         &end,
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

// Instant is shorthand for building an instant from literals in tests.
func Instant(year, month, day, hour, minute int) chrono.Instant {
	return chrono.NewInstant(chrono.MustDate(day, month, year), chrono.MustTime(hour, minute))
}
