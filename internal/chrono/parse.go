package chrono

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timePattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// ParseDate parses a YYYY-MM-DD string into a validated date.
func ParseDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD form", ErrInvalidDate, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return NewDate(day, month, year)
}

// ParseTime parses an HH:MM string into a validated time of day.
func ParseTime(s string) (Time, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return Time{}, fmt.Errorf("%w: %q is not in HH:MM form", ErrInvalidTime, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return NewTime(hour, minute)
}

// ParseInstant parses a YYYY-MM-DDTHH:MM string into a validated instant.
func ParseInstant(s string) (Instant, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return Instant{}, fmt.Errorf("%w: %q is not in YYYY-MM-DDTHH:MM form", ErrInvalidDate, s)
	}
	d, err := ParseDate(datePart)
	if err != nil {
		return Instant{}, err
	}
	t, err := ParseTime(timePart)
	if err != nil {
		return Instant{}, err
	}
	return NewInstant(d, t), nil
}
