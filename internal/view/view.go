// Package view renders command results as plain text.
package view

import (
	"fmt"
	"io"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// View writes human readable output. Results go to Out, errors to ErrOut.
type View struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a View writing results to out and errors to errOut.
func New(out, errOut io.Writer) *View {
	return &View{out: out, errOut: errOut}
}

// Prompt prints the interactive input prompt without a trailing newline.
func (v *View) Prompt() {
	fmt.Fprint(v.out, "> ")
}

// Message prints one informational line.
func (v *View) Message(format string, args ...any) {
	fmt.Fprintf(v.out, format+"\n", args...)
}

// Error prints one error line.
func (v *View) Error(err error) {
	fmt.Fprintf(v.errOut, "Error: %s\n", err)
}

// Events prints the full detail listing used by range queries.
func (v *View) Events(events []event.Event) {
	if len(events) == 0 {
		v.Message("No events found.")
		return
	}
	for _, ev := range events {
		line := fmt.Sprintf("* Subject: %s, Start: %s, End: %s", ev.Subject, ev.Start, ev.EffectiveEnd())
		if ev.Location != event.DefaultLocation {
			line += fmt.Sprintf(", Location: %s", ev.Location)
		}
		v.Message("%s", line)
	}
}

// EventsOnDate prints the compact per-day listing.
func (v *View) EventsOnDate(date chrono.Date, events []event.Event) {
	if len(events) == 0 {
		v.Message("No events scheduled on %s.", date)
		return
	}
	v.Message("Events on %s:", date)
	for _, ev := range events {
		v.Message("* %s from %s to %s", ev.Subject, ev.Start.Time(), ev.EffectiveEnd().Time())
	}
}

// Status prints the busy/available answer for an instant.
func (v *View) Status(at chrono.Instant, busy bool) {
	if busy {
		v.Message("busy")
		return
	}
	v.Message("available")
}
