// Package ics exports calendar events in iCalendar format.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/example/personal-calendar/internal/event"
)

const (
	productID = "-//Personal Calendar//EN"
	// Floating local times, no zone designator.
	dateTimeLayout = "20060102T150405"
)

// Exporter serializes events into an iCalendar stream.
type Exporter struct {
	now func() time.Time
}

// NewExporter returns an Exporter stamping components with now. A nil now
// uses time.Now.
func NewExporter(now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{now: now}
}

// Export writes events to w as a VCALENDAR document.
func (e *Exporter) Export(w io.Writer, events []event.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := e.now().UTC()
	for _, ev := range events {
		vevent := ical.NewComponent(ical.CompEvent)
		vevent.Props.SetText(ical.PropUID, ev.ID)
		vevent.Props.SetText(ical.PropSummary, ev.Subject)
		if ev.Description != event.DefaultDescription {
			vevent.Props.SetText(ical.PropDescription, ev.Description)
		}
		if ev.Location != event.DefaultLocation {
			vevent.Props.SetText(ical.PropLocation, ev.Location)
		}
		vevent.Props.SetText(ical.PropClass, strings.ToUpper(string(ev.Status)))
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		setFloatingTime(vevent, ical.PropDateTimeStart, ev.Start.String())
		setFloatingTime(vevent, ical.PropDateTimeEnd, ev.EffectiveEnd().String())
		cal.Children = append(cal.Children, vevent)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("ics: encode calendar: %w", err)
	}
	return nil
}

// setFloatingTime stores an instant string ("2006-01-02T15:04") as a
// floating iCalendar date-time.
func setFloatingTime(component *ical.Component, name, instant string) {
	parsed, err := time.Parse("2006-01-02T15:04", instant)
	if err != nil {
		return
	}
	prop := ical.NewProp(name)
	prop.Value = parsed.Format(dateTimeLayout)
	component.Props.Set(prop)
}
