package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/personal-calendar/internal/application"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/persistence/memory"
	"github.com/example/personal-calendar/internal/testfixtures"
	"github.com/example/personal-calendar/internal/view"
)

type exporterStub struct {
	exported []event.Event
	err      error
}

func (e *exporterStub) Export(w io.Writer, events []event.Event) error {
	if e.err != nil {
		return e.err
	}
	e.exported = events
	_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	return err
}

func newTestRunner(t *testing.T) (*Runner, *exporterStub, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	store := memory.NewStore()
	service := application.NewCalendarService(store, testfixtures.NewIDGenerator("id").NextFunc(), nil)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	exporter := &exporterStub{}
	runner := NewRunner(service, view.New(out, errOut), exporter, nil)
	return runner, exporter, out, errOut
}

func TestRunner_RunHeadless_FullSession(t *testing.T) {
	t.Parallel()

	runner, _, out, _ := newTestRunner(t)
	script := strings.Join([]string{
		"# weekly planning",
		"create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30",
		"print events on 2024-03-14",
		"show status on 2024-03-14T10:15",
		"show status on 2024-03-14T11:00",
		"exit",
	}, "\n")

	if err := runner.RunHeadless(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunHeadless returned error: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"# weekly planning",
		"Created event \"Standup\" starting 2024-03-14T10:00.",
		"Events on 2024-03-14:",
		"* Standup from 10:00 to 10:30",
		"busy",
		"available",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunner_RunHeadless_RequiresTrailingExit(t *testing.T) {
	t.Parallel()

	runner, _, _, _ := newTestRunner(t)
	script := "create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30\n"

	err := runner.RunHeadless(context.Background(), strings.NewReader(script))
	if err == nil || !strings.Contains(err.Error(), "exit") {
		t.Fatalf("RunHeadless error = %v, want missing-exit failure", err)
	}
}

func TestRunner_RunHeadless_StopsOnFirstError(t *testing.T) {
	t.Parallel()

	runner, _, _, _ := newTestRunner(t)
	script := strings.Join([]string{
		"create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30",
		"create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30",
		"exit",
	}, "\n")

	err := runner.RunHeadless(context.Background(), strings.NewReader(script))
	if err == nil {
		t.Fatal("duplicate create did not abort the script")
	}
}

func TestRunner_RunInteractive_RecoversFromErrors(t *testing.T) {
	t.Parallel()

	runner, _, out, errOut := newTestRunner(t)
	input := strings.Join([]string{
		"create nonsense",
		"create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30",
		"exit",
	}, "\n")

	if err := runner.RunInteractive(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("RunInteractive returned error: %v", err)
	}
	if !strings.Contains(errOut.String(), "Error:") {
		t.Fatal("parse failure was not reported")
	}
	if !strings.Contains(out.String(), "Created event \"Standup\"") {
		t.Fatal("session did not continue after the error")
	}
}

func TestRunner_ExportWritesFile(t *testing.T) {
	t.Parallel()

	runner, exporter, out, _ := newTestRunner(t)
	path := filepath.Join(t.TempDir(), "calendar.ics")
	script := strings.Join([]string{
		"create event Standup from 2024-03-14T10:00 to 2024-03-14T10:30",
		"export cal " + path,
		"exit",
	}, "\n")

	if err := runner.RunHeadless(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunHeadless returned error: %v", err)
	}

	if len(exporter.exported) != 1 {
		t.Fatalf("exporter received %d events, want 1", len(exporter.exported))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(data), "VCALENDAR") {
		t.Fatalf("export file content = %q", data)
	}
	if !strings.Contains(out.String(), "Calendar exported to") {
		t.Fatal("export confirmation missing")
	}
}
