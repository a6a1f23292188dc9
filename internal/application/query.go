package application

import (
	"context"
	"fmt"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// EventsOnDate returns every event whose day interval contains d, inclusive
// on both ends. All-day events occupy their start date.
func (s *CalendarService) EventsOnDate(ctx context.Context, d chrono.Date) ([]event.Event, error) {
	key := "on:" + d.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0)
	for _, ev := range all {
		startDate := ev.Start.Date()
		endDate := ev.EffectiveEnd().Date()
		if !d.Before(startDate) && !d.After(endDate) {
			out = append(out, ev)
		}
	}

	s.cache.Store(key, out)
	return out, nil
}

// EventsInRange returns every event whose interval overlaps
// [startRange, endRange) half-open: event.start < endRange and
// event.end > startRange.
func (s *CalendarService) EventsInRange(ctx context.Context, startRange, endRange chrono.Instant) ([]event.Event, error) {
	key := "range:" + startRange.String() + "/" + endRange.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0)
	for _, ev := range all {
		if ev.Start.Before(endRange) && ev.EffectiveEnd().After(startRange) {
			out = append(out, ev)
		}
	}

	s.cache.Store(key, out)
	return out, nil
}

// IsBusyAt reports whether any event interval contains at, end-exclusive:
// event.start <= at < event.end.
func (s *CalendarService) IsBusyAt(ctx context.Context, at chrono.Instant) (bool, error) {
	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return false, fmt.Errorf("list events: %w", err)
	}

	for _, ev := range all {
		if !at.Before(ev.Start) && at.Before(ev.EffectiveEnd()) {
			return true, nil
		}
	}
	return false, nil
}

// AllEvents returns a defensive copy of the whole calendar in insertion
// order.
func (s *CalendarService) AllEvents(ctx context.Context) ([]event.Event, error) {
	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return all, nil
}
