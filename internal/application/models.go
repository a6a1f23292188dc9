package application

import (
	"time"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// CreateEventParams captures caller provided fields for a single event.
// A nil End creates an all-day event. Empty Location, Description, and
// Status fall back to their defaults.
type CreateEventParams struct {
	Subject     string
	Start       chrono.Instant
	End         *chrono.Instant
	Description string
	Location    string
	Status      event.Status
}

// CreateEventSeriesParams captures caller provided fields for a recurring
// series. EndTime is the shared end time of day; nil generates all-day
// instances. Exactly one of Occurrences and Until must be set.
type CreateEventSeriesParams struct {
	Subject     string
	Start       chrono.Instant
	EndTime     *chrono.Time
	Description string
	Location    string
	Status      event.Status
	Weekdays    []time.Weekday
	Occurrences *int
	Until       *chrono.Date
}

// Scope selects which events of a series an edit targets.
type Scope string

const (
	// ScopeThis targets a single event instance.
	ScopeThis Scope = "this"
	// ScopeFuture targets the anchor and later non-exception series members.
	ScopeFuture Scope = "future"
	// ScopeAll targets every event carrying the anchor's series identifier.
	ScopeAll Scope = "all"
)

// Property names an editable event field.
type Property string

const (
	PropertySubject     Property = "subject"
	PropertyStart       Property = "start"
	PropertyEnd         Property = "end"
	PropertyDescription Property = "description"
	PropertyLocation    Property = "location"
	PropertyStatus      Property = "status"
)

// Locator identifies the event(s) an edit addresses. End is consulted only
// under ScopeThis; a nil End there is normalized to the implied all-day
// window.
type Locator struct {
	Subject string
	Start   chrono.Instant
	End     *chrono.Instant
}

// EditEventParams wraps the data required to edit one or more events.
// NewValue is the textual new value; start/end values use the
// YYYY-MM-DDTHH:MM form and status one of "public"/"private".
type EditEventParams struct {
	Locator  Locator
	Property Property
	NewValue string
	Scope    Scope
}
