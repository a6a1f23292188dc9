// Package application orchestrates validation, conflict detection, and
// persistence for calendar operations.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/persistence"
	"github.com/example/personal-calendar/internal/recurrence"
	"github.com/example/personal-calendar/internal/scheduler"
)

// CalendarService owns one calendar and exposes every operation on it.
type CalendarService struct {
	store     persistence.EventStore
	generator *recurrence.Generator
	newID     func() string
	logger    *slog.Logger
	cache     *queryCache
}

// Option adjusts optional service behavior.
type Option func(*CalendarService)

// WithQueryCacheTTL overrides how long cached query results stay fresh.
func WithQueryCacheTTL(ttl time.Duration) Option {
	return func(s *CalendarService) {
		if ttl > 0 {
			s.cache = newQueryCache(ttl, 128, nil)
		}
	}
}

// NewCalendarService wires dependencies for calendar operations. newID
// supplies event and series identifiers; a nil logger discards logs.
func NewCalendarService(store persistence.EventStore, newID func() string, logger *slog.Logger, opts ...Option) *CalendarService {
	if newID == nil {
		newID = func() string { return "" }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &CalendarService{
		store:     store,
		generator: recurrence.NewGenerator(newID),
		newID:     newID,
		logger:    logger,
		cache:     newQueryCache(30*time.Second, 128, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent validates the request, rejects duplicates, and stores a single
// event. A nil End stores an all-day event.
func (s *CalendarService) CreateEvent(ctx context.Context, params CreateEventParams) (event.Event, error) {
	if s == nil || s.store == nil {
		return event.Event{}, fmt.Errorf("calendar store not configured")
	}

	vErr := &ValidationError{}
	validateSubjectAndStart(params.Subject, params.Start, vErr)
	if params.End != nil && params.End.Before(params.Start) {
		vErr.add("time", "end cannot be before start")
	}
	status, ok := normalizeStatus(params.Status)
	if !ok {
		vErr.add("status", "status must be public or private")
	}
	if vErr.HasErrors() {
		return event.Event{}, vErr
	}

	ev := event.Event{
		ID:          s.newID(),
		Subject:     params.Subject,
		Location:    defaultIfEmpty(params.Location, event.DefaultLocation),
		Description: defaultIfEmpty(params.Description, event.DefaultDescription),
		Status:      status,
		Start:       params.Start,
	}
	if params.End != nil {
		end := *params.End
		ev.End = &end
	}

	existing, err := s.store.ListEvents(ctx)
	if err != nil {
		return event.Event{}, fmt.Errorf("list events: %w", err)
	}
	if dup, found := scheduler.DetectDuplicate(existing, ev, ""); found {
		return event.Event{}, fmt.Errorf("%w: %s at %s", ErrDuplicateEvent, dup.Subject, dup.Start)
	}

	if err := s.store.InsertEvents(ctx, []event.Event{ev}); err != nil {
		return event.Event{}, mapStoreError(err)
	}
	s.cache.Invalidate()

	s.logger.Info("event created", "subject", ev.Subject, "start", ev.Start.String())
	return ev, nil
}

// CreateEventSeries expands the recurrence request and stores every
// generated instance. A single conflicting instance aborts the whole series;
// the calendar is unchanged on any failure.
func (s *CalendarService) CreateEventSeries(ctx context.Context, params CreateEventSeriesParams) ([]event.Event, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("calendar store not configured")
	}

	vErr := &ValidationError{}
	validateSubjectAndStart(params.Subject, params.Start, vErr)
	status, ok := normalizeStatus(params.Status)
	if !ok {
		vErr.add("status", "status must be public or private")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	batch, err := s.generator.Generate(recurrence.Spec{
		Subject:     params.Subject,
		Location:    defaultIfEmpty(params.Location, event.DefaultLocation),
		Description: defaultIfEmpty(params.Description, event.DefaultDescription),
		Status:      status,
		Start:       params.Start,
		EndTime:     params.EndTime,
		Weekdays:    params.Weekdays,
		Occurrences: params.Occurrences,
		Until:       params.Until,
	})
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}

	existing, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i, inst := range batch {
		if dup, found := scheduler.DetectDuplicate(existing, inst, ""); found {
			return nil, fmt.Errorf("%w: generated instance %s at %s collides with an existing event", ErrDuplicateEvent, dup.Subject, dup.Start)
		}
		if dup, found := scheduler.DetectDuplicate(batch[:i], inst, ""); found {
			return nil, fmt.Errorf("%w: generated instance %s at %s collides within the series", ErrDuplicateEvent, dup.Subject, dup.Start)
		}
	}

	if err := s.store.InsertEvents(ctx, batch); err != nil {
		return nil, mapStoreError(err)
	}
	s.cache.Invalidate()

	s.logger.Info("event series created",
		"subject", params.Subject,
		"series_id", batch[0].SeriesID(),
		"instances", len(batch))
	return batch, nil
}

func validateSubjectAndStart(subject string, start chrono.Instant, vErr *ValidationError) {
	if strings.TrimSpace(subject) == "" {
		vErr.add("subject", "subject is required")
	}
	if start.IsZero() {
		vErr.add("start", "start is required")
	}
}

func normalizeStatus(status event.Status) (event.Status, bool) {
	if status == "" {
		return event.StatusPublic, true
	}
	if parsed, ok := event.ParseStatus(string(status)); ok {
		return parsed, true
	}
	return "", false
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrEventNotFound, err)
	}
	if errors.Is(err, persistence.ErrDuplicateID) {
		return fmt.Errorf("%w: %v", ErrDuplicateEvent, err)
	}
	return err
}
