package model

import (
	"time"
)

// dateLayout is the ISO 8601 calendar date format used by every dated directive.
const dateLayout = "2006-01-02"

// Date represents a calendar date. Directives are sorted chronologically by
// their date, and balance assertions apply at the beginning of their date.
// The zero Date means "absent".
//
// Equality and ordering compare the calendar value, never the textual form.
type Date struct {
	time.Time
}

// NewDate parses a date in YYYY-MM-DD format. All digits are required,
// e.g. the 7th of May 2007 is "2007-05-07".
func NewDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Value: s}
	}
	return Date{Time: t}, nil
}

// MustDate parses a date and panics on failure. Intended for tests and
// literals known to be valid.
func MustDate(s string) Date {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateFromTime truncates a time.Time to its date portion.
func NewDateFromTime(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Compare returns -1, 0 or +1 ordering d against other by calendar value.
func (d Date) Compare(other Date) int {
	if d.Before(other.Time) {
		return -1
	}
	if d.After(other.Time) {
		return 1
	}
	return 0
}

// Equal reports whether both dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

func (d Date) String() string {
	return d.Format(dateLayout)
}
