package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/personal-calendar/internal/application"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/view"
)

// Exporter serializes events for the export cal command.
type Exporter interface {
	Export(w io.Writer, events []event.Event) error
}

// Runner reads command lines, parses them, and executes them against the
// calendar service.
type Runner struct {
	service  *application.CalendarService
	view     *view.View
	exporter Exporter
	logger   *slog.Logger
}

// NewRunner wires a Runner. A nil logger discards logs.
func NewRunner(service *application.CalendarService, v *view.View, exporter Exporter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{service: service, view: v, exporter: exporter, logger: logger}
}

// RunInteractive processes commands from r until exit or EOF. Parse and
// execution errors are reported and the session continues.
func (r *Runner) RunInteractive(ctx context.Context, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	for {
		r.view.Prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		done, err := r.execute(ctx, line)
		if err != nil {
			r.view.Error(err)
			continue
		}
		if done {
			return nil
		}
	}
}

// RunHeadless processes every command in a script. The script must end with
// an exit command; any parse or execution error aborts the run.
func (r *Runner) RunHeadless(ctx context.Context, script io.Reader) error {
	scanner := bufio.NewScanner(script)
	exited := false
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			r.view.Message("%s", trimmed)
			continue
		}
		if exited {
			break
		}
		r.view.Message("> %s", trimmed)
		done, err := r.execute(ctx, trimmed)
		if err != nil {
			return fmt.Errorf("command %q: %w", trimmed, err)
		}
		if done {
			exited = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !exited {
		return fmt.Errorf("headless script must end with an exit command")
	}
	return nil
}

// execute parses and runs one line. The bool result reports whether the
// session should end.
func (r *Runner) execute(ctx context.Context, line string) (bool, error) {
	cmd, err := Parse(line)
	if err != nil {
		return false, err
	}

	switch c := cmd.(type) {
	case Exit:
		return true, nil
	case CreateEvent:
		ev, err := r.service.CreateEvent(ctx, c.Params)
		if err != nil {
			return false, err
		}
		r.view.Message("Created event %q starting %s.", ev.Subject, ev.Start)
	case CreateSeries:
		batch, err := r.service.CreateEventSeries(ctx, c.Params)
		if err != nil {
			return false, err
		}
		r.view.Message("Created event series %q with %d occurrences.", c.Params.Subject, len(batch))
	case Edit:
		updated, err := r.service.EditEvent(ctx, c.Params)
		if err != nil {
			return false, err
		}
		r.view.Message("Edited %d event(s).", len(updated))
	case PrintOnDate:
		events, err := r.service.EventsOnDate(ctx, c.Date)
		if err != nil {
			return false, err
		}
		r.view.EventsOnDate(c.Date, events)
	case PrintRange:
		events, err := r.service.EventsInRange(ctx, c.Start, c.End)
		if err != nil {
			return false, err
		}
		r.view.Events(events)
	case ShowStatus:
		busy, err := r.service.IsBusyAt(ctx, c.At)
		if err != nil {
			return false, err
		}
		r.view.Status(c.At, busy)
	case ExportCalendar:
		if err := r.exportTo(ctx, c.Path); err != nil {
			return false, err
		}
		r.view.Message("Calendar exported to %s.", c.Path)
	default:
		return false, fmt.Errorf("%w: unsupported command", ErrSyntax)
	}
	return false, nil
}

func (r *Runner) exportTo(ctx context.Context, path string) error {
	events, err := r.service.AllEvents(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := r.exporter.Export(f, events); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	r.logger.Info("calendar exported", "path", path, "events", len(events))
	return nil
}
