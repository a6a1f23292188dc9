package application

import (
	"context"
	"fmt"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/scheduler"
)

// EditEvent resolves the locator under the requested scope, applies the
// property change to a copy of every targeted event, runs series-identity
// transitions, and commits atomically. Any single conflicting copy rolls
// back the whole call; the calendar is left exactly as it was.
func (s *CalendarService) EditEvent(ctx context.Context, params EditEventParams) ([]event.Event, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("calendar store not configured")
	}

	change, err := parseChange(params.Property, params.NewValue)
	if err != nil {
		return nil, err
	}
	if err := validateScope(params.Scope); err != nil {
		return nil, err
	}

	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	targets, anchor, err := resolveTargets(all, params.Locator, params.Scope)
	if err != nil {
		return nil, err
	}

	// Series-identity branching happens once per edit, never per target.
	var freshSeriesID string
	startChanged := params.Property == PropertyStart
	if anchor.InSeries() {
		switch {
		case params.Scope == ScopeFuture:
			freshSeriesID = s.newID()
		case params.Scope == ScopeAll && startChanged:
			freshSeriesID = s.newID()
		}
	}

	removeIDs := make([]string, 0, len(targets))
	modified := make([]event.Event, 0, len(targets))
	for _, original := range targets {
		copied, err := applyChange(original, params.Property, change)
		if err != nil {
			return nil, err
		}
		copied = transitionSeries(copied, original, anchor, params.Scope, startChanged, freshSeriesID)

		if dup, found := scheduler.DetectDuplicate(all, copied, original.ID); found {
			return nil, fmt.Errorf("%w: modified event %s at %s collides with %s", ErrDuplicateEvent, copied.Subject, copied.Start, dup.Start)
		}
		// Copies of distinct originals can converge on one key, e.g. a
		// start change across an all-day series whose members share an
		// absent end.
		if _, found := scheduler.DetectDuplicate(modified, copied, ""); found {
			return nil, fmt.Errorf("%w: modified events %s at %s collide with each other", ErrDuplicateEvent, copied.Subject, copied.Start)
		}

		removeIDs = append(removeIDs, original.ID)
		modified = append(modified, copied)
	}

	if err := s.store.ReplaceEvents(ctx, removeIDs, modified); err != nil {
		return nil, mapStoreError(err)
	}
	s.cache.Invalidate()

	s.logger.Info("events edited",
		"subject", params.Locator.Subject,
		"property", string(params.Property),
		"scope", string(params.Scope),
		"targets", len(modified))
	return modified, nil
}

// change carries the parsed new value for exactly one property.
type change struct {
	text    string
	instant chrono.Instant
	status  event.Status
}

func parseChange(property Property, newValue string) (change, error) {
	switch property {
	case PropertySubject:
		if newValue == "" {
			vErr := &ValidationError{}
			vErr.add("subject", "subject is required")
			return change{}, vErr
		}
		return change{text: newValue}, nil
	case PropertyDescription, PropertyLocation:
		return change{text: newValue}, nil
	case PropertyStatus:
		status, ok := event.ParseStatus(newValue)
		if !ok {
			vErr := &ValidationError{}
			vErr.add("status", "status must be public or private")
			return change{}, vErr
		}
		return change{status: status}, nil
	case PropertyStart, PropertyEnd:
		at, err := chrono.ParseInstant(newValue)
		if err != nil {
			vErr := &ValidationError{}
			vErr.add(string(property), fmt.Sprintf("invalid date/time value: %v", err))
			return change{}, vErr
		}
		return change{instant: at}, nil
	default:
		vErr := &ValidationError{}
		vErr.add("property", fmt.Sprintf("unknown property %q", property))
		return change{}, vErr
	}
}

func validateScope(scope Scope) error {
	switch scope {
	case ScopeThis, ScopeFuture, ScopeAll:
		return nil
	default:
		vErr := &ValidationError{}
		vErr.add("scope", fmt.Sprintf("unknown scope %q", scope))
		return vErr
	}
}

// resolveTargets picks the edited events. Under ScopeThis the locator must
// name one unique event; under the series scopes all candidates must share
// one series, the earliest being the anchor.
func resolveTargets(all []event.Event, loc Locator, scope Scope) ([]event.Event, event.Event, error) {
	if scope == ScopeThis {
		return resolveThis(all, loc)
	}

	candidates := make([]event.Event, 0, 1)
	for _, ev := range all {
		if ev.Subject == loc.Subject && ev.Start.Equal(loc.Start) {
			candidates = append(candidates, ev)
		}
	}
	if len(candidates) == 0 {
		return nil, event.Event{}, fmt.Errorf("%w: no event matches subject %q starting %s", ErrEventNotFound, loc.Subject, loc.Start)
	}

	anchor := candidates[0]
	if len(candidates) > 1 {
		if !anchor.InSeries() {
			return nil, event.Event{}, fmt.Errorf("%w: multiple standalone events match subject %q starting %s", ErrAmbiguousTarget, loc.Subject, loc.Start)
		}
		for _, candidate := range candidates[1:] {
			if candidate.SeriesID() != anchor.SeriesID() {
				return nil, event.Event{}, fmt.Errorf("%w: events from distinct series match subject %q starting %s", ErrAmbiguousTarget, loc.Subject, loc.Start)
			}
		}
	}

	if !anchor.InSeries() {
		return []event.Event{anchor}, anchor, nil
	}

	switch scope {
	case ScopeFuture:
		if anchor.IsException() {
			// Future propagation from an exception affects just that instance.
			return []event.Event{anchor}, anchor, nil
		}
		targets := make([]event.Event, 0, len(all))
		for _, ev := range all {
			if ev.SeriesID() == anchor.SeriesID() && !ev.Start.Before(anchor.Start) && !ev.IsException() {
				targets = append(targets, ev)
			}
		}
		return targets, anchor, nil
	default: // ScopeAll
		targets := make([]event.Event, 0, len(all))
		for _, ev := range all {
			if ev.SeriesID() == anchor.SeriesID() {
				targets = append(targets, ev)
			}
		}
		return targets, anchor, nil
	}
}

func resolveThis(all []event.Event, loc Locator) ([]event.Event, event.Event, error) {
	start := loc.Start
	var end chrono.Instant
	if loc.End == nil {
		start, end = event.AllDayWindow(loc.Start.Date())
	} else {
		end = *loc.End
	}

	// An event with an explicit 08:00-17:00 end shares its effective window
	// with an all-day event on the same date, so matching stored ends as
	// written keeps the two apart. Fall back to the effective window only
	// when nothing matched exactly.
	matches := make([]event.Event, 0, 1)
	for _, ev := range all {
		if ev.Subject == loc.Subject && ev.Start.Equal(start) && event.EndsEqual(ev.End, loc.End) {
			matches = append(matches, ev)
		}
	}
	if len(matches) == 0 {
		for _, ev := range all {
			if ev.Subject == loc.Subject && ev.Start.Equal(start) && ev.EffectiveEnd().Equal(end) {
				matches = append(matches, ev)
			}
		}
	}
	if len(matches) == 0 {
		return nil, event.Event{}, fmt.Errorf("%w: no event matches subject %q from %s to %s", ErrEventNotFound, loc.Subject, start, end)
	}
	if len(matches) > 1 {
		return nil, event.Event{}, fmt.Errorf("%w: %d events match subject %q from %s to %s", ErrAmbiguousTarget, len(matches), loc.Subject, start, end)
	}
	return matches, matches[0], nil
}

func applyChange(original event.Event, property Property, c change) (event.Event, error) {
	switch property {
	case PropertySubject:
		return original.WithSubject(c.text), nil
	case PropertyDescription:
		return original.WithDescription(c.text), nil
	case PropertyLocation:
		return original.WithLocation(c.text), nil
	case PropertyStatus:
		return original.WithStatus(c.status), nil
	case PropertyStart:
		copied := original.WithStart(c.instant)
		if copied.End != nil && copied.Start.After(*copied.End) {
			vErr := &ValidationError{}
			vErr.add("time", "start cannot be after end")
			return event.Event{}, vErr
		}
		return copied, nil
	default: // PropertyEnd
		copied := original.WithEnd(c.instant)
		if copied.End.Before(copied.Start) {
			vErr := &ValidationError{}
			vErr.add("time", "end cannot be before start")
			return event.Event{}, vErr
		}
		return copied, nil
	}
}

// transitionSeries applies the series-identity rules to an edited copy.
// Future-scope edits branch the targeted tail into a fresh series; all-scope
// start changes shift the whole series under a fresh identifier; other
// all-scope edits re-align members to the anchor's series and clear
// exception marks; this-scope edits mark the instance as an exception.
func transitionSeries(copied, original, anchor event.Event, scope Scope, startChanged bool, freshSeriesID string) event.Event {
	switch {
	case scope == ScopeFuture && anchor.InSeries():
		return copied.WithSeries(&event.SeriesMembership{
			SeriesID:         freshSeriesID,
			OriginalSeriesID: original.SeriesID(),
		})
	case scope == ScopeAll && anchor.InSeries() && startChanged:
		return copied.WithSeries(&event.SeriesMembership{
			SeriesID:         freshSeriesID,
			OriginalSeriesID: anchor.SeriesID(),
		})
	case scope == ScopeAll && anchor.InSeries():
		return copied.WithSeries(&event.SeriesMembership{
			SeriesID:         anchor.SeriesID(),
			OriginalSeriesID: inheritedOriginalSeriesID(original),
		})
	case scope == ScopeThis && original.InSeries():
		return copied.WithSeries(&event.SeriesMembership{
			SeriesID:         original.SeriesID(),
			OriginalSeriesID: inheritedOriginalSeriesID(original),
			IsException:      true,
		})
	default:
		// Standalone targets keep no series identity to transition.
		return copied
	}
}

// inheritedOriginalSeriesID defaults to the original's recorded lineage,
// falling back to its current series.
func inheritedOriginalSeriesID(original event.Event) string {
	if original.Series == nil {
		return ""
	}
	if original.Series.OriginalSeriesID != "" {
		return original.Series.OriginalSeriesID
	}
	return original.Series.SeriesID
}
