// Package command parses the calendar's text command language and executes
// it against the application service.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/personal-calendar/internal/application"
	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
)

// ErrSyntax indicates input that does not match any command form.
var ErrSyntax = errors.New("command: invalid syntax")

// Command is one parsed calendar command, ready for execution.
type Command interface{ isCommand() }

// CreateEvent creates a single event.
type CreateEvent struct {
	Params application.CreateEventParams
}

// CreateSeries creates a recurring event series.
type CreateSeries struct {
	Params application.CreateEventSeriesParams
}

// Edit modifies one or more events.
type Edit struct {
	Params application.EditEventParams
}

// PrintOnDate lists the events occurring on a date.
type PrintOnDate struct {
	Date chrono.Date
}

// PrintRange lists the events overlapping an instant range.
type PrintRange struct {
	Start chrono.Instant
	End   chrono.Instant
}

// ShowStatus reports busy/available at an instant.
type ShowStatus struct {
	At chrono.Instant
}

// ExportCalendar writes the calendar to an iCalendar file.
type ExportCalendar struct {
	Path string
}

// Exit terminates the session.
type Exit struct{}

func (CreateEvent) isCommand()    {}
func (CreateSeries) isCommand()   {}
func (Edit) isCommand()           {}
func (PrintOnDate) isCommand()    {}
func (PrintRange) isCommand()     {}
func (ShowStatus) isCommand()     {}
func (ExportCalendar) isCommand() {}
func (Exit) isCommand()           {}

const (
	dateToken    = `\d{4}-\d{2}-\d{2}`
	instantToken = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`
	subjectToken = `"[^"]+"|\S+`
	repeatClause = `(?: repeats ([MTWRFSU]+) (?:for (\d+) times|until (` + dateToken + `)))?`
)

var (
	createTimedPattern = regexp.MustCompile(
		`(?i)^create event (` + subjectToken + `) from (` + instantToken + `) to (` + instantToken + `)` + repeatClause + `(.*)$`)
	createAllDayPattern = regexp.MustCompile(
		`(?i)^create event (` + subjectToken + `) on (` + dateToken + `)` + repeatClause + `(.*)$`)
	optionalArgPattern = regexp.MustCompile(
		`(?i)(?:with\s+)?(description|location|status)\s+"([^"]*)"`)
	editPattern = regexp.MustCompile(
		`(?i)^edit (event|events|series) (subject|start|end|description|location|status) (` + subjectToken + `) from (` + instantToken + `)(?: to (` + instantToken + `))? with (.*)$`)
	printOnDatePattern = regexp.MustCompile(`(?i)^print events on (` + dateToken + `)$`)
	printRangePattern  = regexp.MustCompile(`(?i)^print events from (` + instantToken + `) to (` + instantToken + `)$`)
	showStatusPattern  = regexp.MustCompile(`(?i)^show status on (` + instantToken + `)$`)
	exportPattern      = regexp.MustCompile(`(?i)^export cal (\S+)$`)
	quotedValuePattern = regexp.MustCompile(`^"([^"]*)"`)
)

var weekdayLetters = map[byte]time.Weekday{
	'M': time.Monday,
	'T': time.Tuesday,
	'W': time.Wednesday,
	'R': time.Thursday,
	'F': time.Friday,
	'S': time.Saturday,
	'U': time.Sunday,
}

// Parse turns one input line into a Command.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty command", ErrSyntax)
	}
	if strings.EqualFold(trimmed, "exit") {
		return Exit{}, nil
	}

	action := strings.ToLower(strings.Fields(trimmed)[0])
	switch action {
	case "create":
		return parseCreate(trimmed)
	case "edit":
		return parseEdit(trimmed)
	case "print":
		return parsePrint(trimmed)
	case "show":
		return parseShow(trimmed)
	case "export":
		return parseExport(trimmed)
	default:
		return nil, fmt.Errorf("%w: unrecognized command %q", ErrSyntax, action)
	}
}

func parseCreate(line string) (Command, error) {
	allDay := false
	m := createTimedPattern.FindStringSubmatch(line)
	if m == nil {
		m = createAllDayPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: problem with the create event structure, subject, or from/to/on clauses", ErrSyntax)
		}
		allDay = true
	}

	subject := unquote(m[1])

	var start chrono.Instant
	var endTime *chrono.Time
	var end *chrono.Instant
	if allDay {
		date, err := chrono.ParseDate(m[2])
		if err != nil {
			return nil, err
		}
		start, _ = event.AllDayWindow(date)
	} else {
		var err error
		start, err = chrono.ParseInstant(m[2])
		if err != nil {
			return nil, err
		}
		endAt, err := chrono.ParseInstant(m[3])
		if err != nil {
			return nil, err
		}
		end = &endAt
		t := endAt.Time()
		endTime = &t
	}

	// Group offsets differ between the two create forms: the timed form has
	// an extra to-instant group before the repeat clause.
	repeatBase := 3
	if !allDay {
		repeatBase = 4
	}

	description, location, status, err := parseOptionalArgs(m[repeatBase+3])
	if err != nil {
		return nil, err
	}

	if m[repeatBase] == "" {
		return CreateEvent{Params: application.CreateEventParams{
			Subject:     subject,
			Start:       start,
			End:         end,
			Description: description,
			Location:    location,
			Status:      status,
		}}, nil
	}

	weekdays, err := parseWeekdays(m[repeatBase])
	if err != nil {
		return nil, err
	}

	params := application.CreateEventSeriesParams{
		Subject:     subject,
		Start:       start,
		EndTime:     endTime,
		Description: description,
		Location:    location,
		Status:      status,
		Weekdays:    weekdays,
	}
	if m[repeatBase+1] != "" {
		occurrences, err := strconv.Atoi(m[repeatBase+1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid occurrence count %q", ErrSyntax, m[repeatBase+1])
		}
		params.Occurrences = &occurrences
	} else {
		until, err := chrono.ParseDate(m[repeatBase+2])
		if err != nil {
			return nil, err
		}
		params.Until = &until
	}

	if !allDay && !start.Date().Equal(end.Date()) {
		return nil, fmt.Errorf("%w: for recurring events the start and end time must be on the same day", ErrSyntax)
	}

	return CreateSeries{Params: params}, nil
}

func parseEdit(line string) (Command, error) {
	m := editPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid edit command", ErrSyntax)
	}

	scopeKey := strings.ToLower(m[1])
	property := application.Property(strings.ToLower(m[2]))
	subject := unquote(m[3])
	start, err := chrono.ParseInstant(m[4])
	if err != nil {
		return nil, err
	}

	locator := application.Locator{Subject: subject, Start: start}

	var scope application.Scope
	switch scopeKey {
	case "event":
		scope = application.ScopeThis
		if m[5] == "" {
			return nil, fmt.Errorf("%w: edit event requires the to clause to uniquely identify the event", ErrSyntax)
		}
		end, err := chrono.ParseInstant(m[5])
		if err != nil {
			return nil, err
		}
		locator.End = &end
	case "events":
		scope = application.ScopeFuture
		if m[5] != "" {
			return nil, fmt.Errorf("%w: edit events identifies by subject and start only; drop the to clause", ErrSyntax)
		}
	default: // series
		scope = application.ScopeAll
		if m[5] != "" {
			return nil, fmt.Errorf("%w: edit series identifies by subject and start only; drop the to clause", ErrSyntax)
		}
	}

	// A quoted value keeps everything between the quotes, including any
	// # characters; only unquoted values have trailing comments stripped.
	raw := strings.TrimSpace(m[6])
	var newValue string
	if q := quotedValuePattern.FindStringSubmatch(raw); q != nil {
		newValue = q[1]
	} else {
		newValue, _, _ = strings.Cut(raw, "#")
		newValue = strings.TrimSpace(newValue)
	}

	return Edit{Params: application.EditEventParams{
		Locator:  locator,
		Property: property,
		NewValue: newValue,
		Scope:    scope,
	}}, nil
}

func parsePrint(line string) (Command, error) {
	if m := printOnDatePattern.FindStringSubmatch(line); m != nil {
		date, err := chrono.ParseDate(m[1])
		if err != nil {
			return nil, err
		}
		return PrintOnDate{Date: date}, nil
	}
	if m := printRangePattern.FindStringSubmatch(line); m != nil {
		start, err := chrono.ParseInstant(m[1])
		if err != nil {
			return nil, err
		}
		end, err := chrono.ParseInstant(m[2])
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end of range cannot be before start of range", ErrSyntax)
		}
		return PrintRange{Start: start, End: end}, nil
	}
	return nil, fmt.Errorf("%w: invalid print events command", ErrSyntax)
}

func parseShow(line string) (Command, error) {
	m := showStatusPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid show status command", ErrSyntax)
	}
	at, err := chrono.ParseInstant(m[1])
	if err != nil {
		return nil, err
	}
	return ShowStatus{At: at}, nil
}

func parseExport(line string) (Command, error) {
	m := exportPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid export cal command", ErrSyntax)
	}
	return ExportCalendar{Path: m[1]}, nil
}

func parseOptionalArgs(args string) (description, location string, status event.Status, err error) {
	for _, m := range optionalArgPattern.FindAllStringSubmatch(args, -1) {
		switch strings.ToLower(m[1]) {
		case "description":
			description = m[2]
		case "location":
			location = m[2]
		case "status":
			parsed, ok := event.ParseStatus(strings.ToLower(m[2]))
			if !ok {
				return "", "", "", fmt.Errorf("%w: status must be public or private, got %q", ErrSyntax, m[2])
			}
			status = parsed
		}
	}
	return description, location, status, nil
}

func parseWeekdays(letters string) ([]time.Weekday, error) {
	letters = strings.ToUpper(letters)
	days := make([]time.Weekday, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		day, ok := weekdayLetters[letters[i]]
		if !ok {
			return nil, fmt.Errorf("%w: invalid weekday code %q", ErrSyntax, string(letters[i]))
		}
		days = append(days, day)
	}
	return days, nil
}

func unquote(token string) string {
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		return token[1 : len(token)-1]
	}
	return token
}
