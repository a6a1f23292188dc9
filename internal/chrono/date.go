package chrono

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate indicates date components that do not form a valid calendar day.
var ErrInvalidDate = errors.New("chrono: invalid date")

var daysInMonths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a day on the proleptic Gregorian calendar. Years start at 1; there
// is no timezone. The zero value is not a valid date; construct through
// NewDate.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate validates the components and returns the corresponding date.
func NewDate(day, month, year int) (Date, error) {
	if year < 1 {
		return Date{}, fmt.Errorf("%w: year %d must be positive", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidDate, month)
	}
	max := daysIn(month, year)
	if day < 1 || day > max {
		return Date{}, fmt.Errorf("%w: day %d out of range 1-%d for month %d of %d", ErrInvalidDate, day, max, month, year)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid components. Intended for
// fixed dates known to be valid.
func MustDate(day, month, year int) Date {
	d, err := NewDate(day, month, year)
	if err != nil {
		panic(err)
	}
	return d
}

// IsLeapYear reports whether year is a leap year under the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(month, year int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonths[month-1]
}

// Day returns the day of month, 1-31.
func (d Date) Day() int { return d.day }

// Month returns the month of year, 1-12.
func (d Date) Month() int { return d.month }

// Year returns the year, >= 1.
func (d Date) Year() int { return d.year }

// IsZero reports whether d is the invalid zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Advance returns the date exactly days days after d; days may be negative.
// Month and year boundaries roll over, including leap Februaries. The
// calendar starts at 0001-01-01; advancing past it panics, matching the
// year >= 1 invariant MustDate enforces.
func (d Date) Advance(days int) Date {
	day, month, year := d.day+days, d.month, d.year
	for {
		dim := daysIn(month, year)
		if day >= 1 && day <= dim {
			return Date{year: year, month: month, day: day}
		}
		if day > dim {
			day -= dim
			month++
			if month > 12 {
				month = 1
				year++
			}
		} else {
			month--
			if month < 1 {
				if year == 1 {
					panic(fmt.Errorf("%w: %s advanced by %d days precedes 0001-01-01", ErrInvalidDate, d, days))
				}
				month = 12
				year--
			}
			day += daysIn(month, year)
		}
	}
}

// Weekday returns the day of week, computed from the day ordinal with
// 0001-01-01 anchored to Monday.
func (d Date) Weekday() time.Weekday {
	y := d.year - 1
	ordinal := 365*y + y/4 - y/100 + y/400
	for m := 1; m < d.month; m++ {
		ordinal += daysIn(m, d.year)
	}
	ordinal += d.day
	return time.Weekday(ordinal % 7)
}

// Compare orders dates chronologically, returning -1, 0, or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return compareInt(d.year, other.year)
	case d.month != other.month:
		return compareInt(d.month, other.month)
	default:
		return compareInt(d.day, other.day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d == other }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
