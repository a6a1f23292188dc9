// Package recurrence expands recurrence requests into concrete event
// instances.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// safetyBoundDays caps the cursor walk so an unsatisfiable rule cannot spin
// forever.
const safetyBoundDays = 5 * 366

// ErrInvalidSpec indicates a recurrence request that cannot be expanded.
var ErrInvalidSpec = errors.New("recurrence: invalid series spec")

// ErrOverflow indicates the walk exhausted the safety bound before the
// termination rule was satisfied.
var ErrOverflow = errors.New("recurrence: series generation exceeded safety bound")

// Spec describes one recurrence request. Exactly one of Occurrences and
// Until terminates the series. A nil EndTime generates all-day instances.
type Spec struct {
	Subject     string
	Location    string
	Description string
	Status      event.Status
	Start       chrono.Instant
	EndTime     *chrono.Time
	Weekdays    []time.Weekday
	Occurrences *int
	Until       *chrono.Date
}

// Generator expands recurrence specs into event instances.
type Generator struct {
	newID func() string
}

// NewGenerator constructs a Generator drawing identifiers from newID.
func NewGenerator(newID func() string) *Generator {
	if newID == nil {
		newID = func() string { return "" }
	}
	return &Generator{newID: newID}
}

// Generate materializes every instance of the series described by spec,
// walking a date cursor one day at a time from the start date. All instances
// share one freshly generated series identifier and the spec's time-of-day
// window. The walk stops when the occurrence count is reached or the cursor
// passes the end date; exhausting the safety bound first yields ErrOverflow.
func (g *Generator) Generate(spec Spec) ([]event.Event, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	weekdaySet := make(map[time.Weekday]struct{}, len(spec.Weekdays))
	for _, day := range spec.Weekdays {
		weekdaySet[day] = struct{}{}
	}

	seriesID := g.newID()
	startTime := spec.Start.Time()
	cursor := spec.Start.Date()
	instances := make([]event.Event, 0)

	for steps := 0; steps < safetyBoundDays; steps++ {
		if spec.Until != nil && cursor.After(*spec.Until) {
			return instances, nil
		}

		if _, ok := weekdaySet[cursor.Weekday()]; ok {
			inst := event.Event{
				ID:          g.newID(),
				Subject:     spec.Subject,
				Location:    spec.Location,
				Description: spec.Description,
				Status:      spec.Status,
				Start:       chrono.NewInstant(cursor, startTime),
				Series: &event.SeriesMembership{
					SeriesID:         seriesID,
					OriginalSeriesID: seriesID,
				},
			}
			if spec.EndTime != nil {
				end := chrono.NewInstant(cursor, *spec.EndTime)
				inst.End = &end
			}
			instances = append(instances, inst)
			// Terminate as soon as the count is met so a series whose
			// final occurrence lands on the last in-bound day succeeds.
			if spec.Occurrences != nil && len(instances) >= *spec.Occurrences {
				return instances, nil
			}
		}

		cursor = cursor.Advance(1)
	}

	return nil, fmt.Errorf("%w: %d days walked without satisfying the termination rule", ErrOverflow, safetyBoundDays)
}

func validateSpec(spec Spec) error {
	if spec.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidSpec)
	}
	if len(spec.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidSpec)
	}
	if spec.Occurrences == nil && spec.Until == nil {
		return fmt.Errorf("%w: either an occurrence count or an end date is required", ErrInvalidSpec)
	}
	if spec.Occurrences != nil && spec.Until != nil {
		return fmt.Errorf("%w: occurrence count and end date are mutually exclusive", ErrInvalidSpec)
	}
	if spec.Occurrences != nil && *spec.Occurrences <= 0 {
		return fmt.Errorf("%w: occurrence count must be positive, got %d", ErrInvalidSpec, *spec.Occurrences)
	}
	if spec.Until != nil && spec.Until.Before(spec.Start.Date()) {
		return fmt.Errorf("%w: end date %s is before the series start date %s", ErrInvalidSpec, spec.Until, spec.Start.Date())
	}
	if spec.EndTime != nil && spec.EndTime.Before(spec.Start.Time()) {
		return fmt.Errorf("%w: end time %s is before the start time %s", ErrInvalidSpec, spec.EndTime, spec.Start.Time())
	}
	return nil
}
