package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/persistence"
	"github.com/example/personal-calendar/internal/testfixtures"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	timed := testfixtures.NewEvent(
		testfixtures.WithSubject("Timed"),
		testfixtures.WithSeries(&event.SeriesMembership{
			SeriesID:         "series-1",
			OriginalSeriesID: "series-0",
			IsException:      true,
		}))
	allDay := testfixtures.NewEvent(testfixtures.WithSubject("All Day"), testfixtures.WithEnd(nil))
	allDay.Status = event.StatusPrivate

	if err := store.InsertEvents(ctx, []event.Event{timed, allDay}); err != nil {
		t.Fatalf("InsertEvents returned error: %v", err)
	}

	listed, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d events, want 2", len(listed))
	}

	got := listed[0]
	if got.ID != timed.ID || got.Subject != "Timed" {
		t.Fatalf("first event = %+v", got)
	}
	if got.End == nil || !got.End.Equal(*timed.End) {
		t.Fatalf("timed end = %v, want %v", got.End, timed.End)
	}
	if got.Series == nil || got.Series.SeriesID != "series-1" ||
		got.Series.OriginalSeriesID != "series-0" || !got.Series.IsException {
		t.Fatalf("series membership = %+v", got.Series)
	}

	got = listed[1]
	if got.End != nil {
		t.Fatalf("all-day event decoded with end %v", got.End)
	}
	if got.Series != nil {
		t.Fatalf("standalone event decoded with series %+v", got.Series)
	}
	if got.Status != event.StatusPrivate {
		t.Fatalf("status = %q, want private", got.Status)
	}
	if !got.Start.Equal(allDay.Start) {
		t.Fatalf("start = %v, want %v", got.Start, allDay.Start)
	}
}

func TestStore_InsertEvents_DuplicateIDRollsBack(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	existing := testfixtures.NewEvent()
	if err := store.InsertEvents(ctx, []event.Event{existing}); err != nil {
		t.Fatalf("InsertEvents returned error: %v", err)
	}

	fresh := testfixtures.NewEvent()
	clash := testfixtures.NewEvent()
	clash.ID = existing.ID

	err := store.InsertEvents(ctx, []event.Event{fresh, clash})
	if !errors.Is(err, persistence.ErrDuplicateID) {
		t.Fatalf("InsertEvents error = %v, want ErrDuplicateID", err)
	}

	listed, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("store holds %d events after failed batch, want 1", len(listed))
	}
}

func TestStore_ReplaceEvents(t *testing.T) {
	t.Parallel()

	t.Run("removed rows free their identifiers", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		ctx := context.Background()

		existing := testfixtures.NewEvent()
		if err := store.InsertEvents(ctx, []event.Event{existing}); err != nil {
			t.Fatalf("InsertEvents returned error: %v", err)
		}

		edited := existing
		edited.Subject = "Edited"
		if err := store.ReplaceEvents(ctx, []string{existing.ID}, []event.Event{edited}); err != nil {
			t.Fatalf("ReplaceEvents returned error: %v", err)
		}

		listed, err := store.ListEvents(ctx)
		if err != nil {
			t.Fatalf("ListEvents returned error: %v", err)
		}
		if len(listed) != 1 || listed[0].Subject != "Edited" {
			t.Fatalf("store after replace = %+v", listed)
		}
	})

	t.Run("missing identifier rolls back the whole call", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		ctx := context.Background()

		existing := testfixtures.NewEvent()
		if err := store.InsertEvents(ctx, []event.Event{existing}); err != nil {
			t.Fatalf("InsertEvents returned error: %v", err)
		}

		err := store.ReplaceEvents(ctx, []string{existing.ID, "absent"}, nil)
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("ReplaceEvents error = %v, want ErrNotFound", err)
		}

		listed, err := store.ListEvents(ctx)
		if err != nil {
			t.Fatalf("ListEvents returned error: %v", err)
		}
		if len(listed) != 1 {
			t.Fatal("failed replace removed rows")
		}
	})

	t.Run("replacements land after surviving rows", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		ctx := context.Background()

		first := testfixtures.NewEvent(testfixtures.WithSubject("First"))
		second := testfixtures.NewEvent(testfixtures.WithSubject("Second"))
		if err := store.InsertEvents(ctx, []event.Event{first, second}); err != nil {
			t.Fatalf("InsertEvents returned error: %v", err)
		}

		edited := first
		edited.Subject = "First Edited"
		if err := store.ReplaceEvents(ctx, []string{first.ID}, []event.Event{edited}); err != nil {
			t.Fatalf("ReplaceEvents returned error: %v", err)
		}

		listed, err := store.ListEvents(ctx)
		if err != nil {
			t.Fatalf("ListEvents returned error: %v", err)
		}
		if listed[0].Subject != "Second" || listed[1].Subject != "First Edited" {
			t.Fatalf("order after replace = [%q, %q]", listed[0].Subject, listed[1].Subject)
		}
	})
}
