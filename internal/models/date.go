package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/dateutils"
)

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps only the calendar part of t.
func DateOf(t time.Time) Date {
	return Date{Time: dateutils.Civil(t)}
}

// ParseDate parses user or backend input into a Date.
func ParseDate(s string) (Date, error) {
	t, err := dateutils.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD; the zero date is "".
func (d Date) String() string {
	return dateutils.ToISODate(d.Time)
}

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool {
	return dateutils.CompareDates(d.Time, other.Time) > 0
}

// Equal compares calendar days.
func (d Date) Equal(other Date) bool {
	return dateutils.CompareDates(d.Time, other.Time) == 0
}

// UnmarshalJSON accepts "YYYY-MM-DD" (and the other input layouts). An
// unparseable or missing date decodes as the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}

// MarshalJSON writes "YYYY-MM-DD", or null for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
