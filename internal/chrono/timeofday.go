package chrono

import (
	"errors"
	"fmt"
)

// ErrInvalidTime indicates time components outside the 24-hour clock.
var ErrInvalidTime = errors.New("chrono: invalid time")

// Time is a minute-precision time of day. Immutable; ordered by (hour, minute).
type Time struct {
	hour   int
	minute int
}

// NewTime validates the components and returns the corresponding time of day.
func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTime, minute)
	}
	return Time{hour: hour, minute: minute}, nil
}

// MustTime is like NewTime but panics on invalid components. Intended for
// fixed times known to be valid.
func MustTime(hour, minute int) Time {
	t, err := NewTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour, 0-23.
func (t Time) Hour() int { return t.hour }

// Minute returns the minute, 0-59.
func (t Time) Minute() int { return t.minute }

// Compare orders times of day, returning -1, 0, or 1.
func (t Time) Compare(other Time) int {
	if t.hour != other.hour {
		return compareInt(t.hour, other.hour)
	}
	return compareInt(t.minute, other.minute)
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool { return t.Compare(other) < 0 }

// After reports whether t is strictly later than other.
func (t Time) After(other Time) bool { return t.Compare(other) > 0 }

// Equal reports whether t and other are the same minute.
func (t Time) Equal(other Time) bool { return t == other }

// String formats the time as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
