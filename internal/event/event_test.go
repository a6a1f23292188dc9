package event

import (
	"testing"

	"github.com/example/personal-calendar/internal/chrono"
)

func timedEvent() Event {
	start := chrono.NewInstant(chrono.MustDate(14, 3, 2024), chrono.MustTime(10, 0))
	end := chrono.NewInstant(chrono.MustDate(14, 3, 2024), chrono.MustTime(11, 0))
	return Event{
		ID:          "event-1",
		Subject:     "Standup",
		Location:    DefaultLocation,
		Description: DefaultDescription,
		Status:      StatusPublic,
		Start:       start,
		End:         &end,
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	if status, ok := ParseStatus("private"); !ok || status != StatusPrivate {
		t.Fatalf("ParseStatus(private) = %v, %v", status, ok)
	}
	if _, ok := ParseStatus("hidden"); ok {
		t.Fatal("ParseStatus accepted unknown status")
	}
	if _, ok := ParseStatus(""); ok {
		t.Fatal("ParseStatus accepted empty status")
	}
}

func TestAllDayWindow(t *testing.T) {
	t.Parallel()

	d := chrono.MustDate(14, 3, 2024)
	start, end := AllDayWindow(d)
	if got, want := start.String(), "2024-03-14T08:00"; got != want {
		t.Fatalf("window start = %q, want %q", got, want)
	}
	if got, want := end.String(), "2024-03-14T17:00"; got != want {
		t.Fatalf("window end = %q, want %q", got, want)
	}
}

func TestEvent_EffectiveEnd(t *testing.T) {
	t.Parallel()

	timed := timedEvent()
	if got := timed.EffectiveEnd(); !got.Equal(*timed.End) {
		t.Fatalf("timed EffectiveEnd = %v, want %v", got, *timed.End)
	}

	allDay := timed
	allDay.End = nil
	want := chrono.NewInstant(allDay.Start.Date(), chrono.MustTime(17, 0))
	if got := allDay.EffectiveEnd(); !got.Equal(want) {
		t.Fatalf("all-day EffectiveEnd = %v, want %v", got, want)
	}
}

func TestEndsEqual(t *testing.T) {
	t.Parallel()

	a := chrono.NewInstant(chrono.MustDate(14, 3, 2024), chrono.MustTime(11, 0))
	b := a
	c := chrono.NewInstant(chrono.MustDate(14, 3, 2024), chrono.MustTime(12, 0))

	if !EndsEqual(nil, nil) {
		t.Fatal("two absent ends must be equal")
	}
	if EndsEqual(&a, nil) || EndsEqual(nil, &a) {
		t.Fatal("absent end must not equal a concrete end")
	}
	if !EndsEqual(&a, &b) {
		t.Fatal("identical concrete ends must be equal")
	}
	if EndsEqual(&a, &c) {
		t.Fatal("different concrete ends must not be equal")
	}
}

func TestEvent_Clone_SharesNothing(t *testing.T) {
	t.Parallel()

	original := timedEvent()
	original.Series = &SeriesMembership{SeriesID: "series-1", OriginalSeriesID: "series-1"}

	copied := original.Clone()
	copied.End = nil
	copied.Series.SeriesID = "series-2"

	if original.End == nil {
		t.Fatal("clone mutation leaked into original End")
	}
	if original.Series.SeriesID != "series-1" {
		t.Fatal("clone mutation leaked into original Series")
	}
}

func TestEvent_WithHelpers(t *testing.T) {
	t.Parallel()

	original := timedEvent()
	newStart := chrono.NewInstant(chrono.MustDate(15, 3, 2024), chrono.MustTime(9, 0))

	updated := original.WithSubject("Retro").WithStart(newStart).WithStatus(StatusPrivate)
	if updated.Subject != "Retro" || !updated.Start.Equal(newStart) || updated.Status != StatusPrivate {
		t.Fatalf("With helpers produced %+v", updated)
	}
	if original.Subject != "Standup" || original.Status != StatusPublic {
		t.Fatal("With helpers mutated the original")
	}

	series := &SeriesMembership{SeriesID: "series-1", OriginalSeriesID: "series-0", IsException: true}
	member := original.WithSeries(series)
	if !member.InSeries() || member.SeriesID() != "series-1" || !member.IsException() {
		t.Fatalf("WithSeries produced %+v", member.Series)
	}
	if standalone := member.WithSeries(nil); standalone.InSeries() {
		t.Fatal("WithSeries(nil) kept the membership")
	}
}
