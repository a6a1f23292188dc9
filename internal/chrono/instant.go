package chrono

import "fmt"

// Instant is a date combined with a time of day. Total order compares the
// date first, then the time; equality is structural.
type Instant struct {
	d Date
	t Time
}

// NewInstant combines an already-validated date and time of day.
func NewInstant(d Date, t Time) Instant {
	return Instant{d: d, t: t}
}

// Date returns the date component.
func (i Instant) Date() Date { return i.d }

// Time returns the time-of-day component.
func (i Instant) Time() Time { return i.t }

// IsZero reports whether i carries the invalid zero date.
func (i Instant) IsZero() bool { return i.d.IsZero() }

// Compare orders instants chronologically, returning -1, 0, or 1.
func (i Instant) Compare(other Instant) int {
	if c := i.d.Compare(other.d); c != 0 {
		return c
	}
	return i.t.Compare(other.t)
}

// Before reports whether i is strictly earlier than other.
func (i Instant) Before(other Instant) bool { return i.Compare(other) < 0 }

// After reports whether i is strictly later than other.
func (i Instant) After(other Instant) bool { return i.Compare(other) > 0 }

// Equal reports whether i and other name the same minute of the same day.
func (i Instant) Equal(other Instant) bool { return i == other }

// String formats the instant as YYYY-MM-DDTHH:MM.
func (i Instant) String() string {
	return fmt.Sprintf("%sT%s", i.d, i.t)
}
