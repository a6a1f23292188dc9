package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/testfixtures"
)

func TestView_Events(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	v := New(out, &bytes.Buffer{})

	located := testfixtures.NewEvent(testfixtures.WithSubject("Standup"))
	located.Location = "Room 4"
	unlocated := testfixtures.NewEvent(testfixtures.WithSubject("Review"))

	v.Events([]event.Event{located, unlocated})

	output := out.String()
	if !strings.Contains(output, "* Subject: Standup") {
		t.Fatalf("output missing subject line:\n%s", output)
	}
	if !strings.Contains(output, "Location: Room 4") {
		t.Fatalf("output missing location:\n%s", output)
	}
	if strings.Contains(output, event.DefaultLocation) {
		t.Fatalf("default location leaked into output:\n%s", output)
	}
}

func TestView_Events_Empty(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	New(out, &bytes.Buffer{}).Events(nil)
	if got := out.String(); got != "No events found.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestView_EventsOnDate(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	v := New(out, &bytes.Buffer{})
	date := chrono.MustDate(14, 3, 2024)

	v.EventsOnDate(date, nil)
	if got := out.String(); got != "No events scheduled on 2024-03-14.\n" {
		t.Fatalf("empty day output = %q", got)
	}

	out.Reset()
	ev := testfixtures.NewEvent(
		testfixtures.WithSubject("Standup"),
		testfixtures.WithStart(testfixtures.Instant(2024, 3, 14, 10, 0)))
	end := testfixtures.Instant(2024, 3, 14, 10, 30)
	ev.End = &end

	v.EventsOnDate(date, []event.Event{ev})
	output := out.String()
	if !strings.Contains(output, "Events on 2024-03-14:") {
		t.Fatalf("header missing:\n%s", output)
	}
	if !strings.Contains(output, "* Standup from 10:00 to 10:30") {
		t.Fatalf("entry missing:\n%s", output)
	}
}

func TestView_StatusAndError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	v := New(out, errOut)
	at := testfixtures.Instant(2024, 3, 14, 10, 0)

	v.Status(at, true)
	v.Status(at, false)
	if got := out.String(); got != "busy\navailable\n" {
		t.Fatalf("status output = %q", got)
	}

	v.Error(errors.New("something broke"))
	if got := errOut.String(); got != "Error: something broke\n" {
		t.Fatalf("error output = %q", got)
	}
	if strings.Contains(out.String(), "broke") {
		t.Fatal("error leaked onto the result stream")
	}
}
