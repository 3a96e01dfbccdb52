// Package dateutils holds the calendar-date helpers used by the client.
// Transaction dates carry no time of day, so every value produced here is
// normalized to midnight UTC.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted from users and from the backend.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutSlash    = "2006/01/02"
	DateLayoutDateTime = "2006-01-02T15:04:05Z07:00"
)

// InputFormats are tried in order when parsing a date typed by the user.
var InputFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutSlash,
	DateLayoutDateTime,
	"2006-01-02T15:04:05",
}

var spaces = regexp.MustCompile(`\s+`)

// CleanDateString trims the input and collapses internal whitespace.
func CleanDateString(s string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseDate parses s with the first matching layout in InputFormats and
// returns the civil date.
func ParseDate(s string) (time.Time, error) {
	clean := CleanDateString(s)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range InputFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return Civil(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// Civil drops the time of day, keeping the calendar date as seen in t's
// own location.
func Civil(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the civil date of now in the local time zone.
func Today(now time.Time) time.Time {
	return Civil(now.Local())
}

// ToISODate formats t as YYYY-MM-DD; the zero time formats as "".
func ToISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayoutISO)
}

// CompareDates compares the calendar dates of a and b, returning -1, 0 or 1.
func CompareDates(a, b time.Time) int {
	a, b = Civil(a), Civil(b)
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// IsFuture reports whether date falls on a day after today.
func IsFuture(date, today time.Time) bool {
	return CompareDates(date, today) > 0
}
