// utils/timeutil.go
package utils

import (
	"strings"
	"time"
)

const ISODate = "2006-01-02"

// ParseISODate parses YYYY-MM-DD into a UTC-midnight time.
func ParseISODate(value string) (time.Time, error) {
	t, err := time.Parse(ISODate, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// MustParseISODate is for constants and tests.
func MustParseISODate(value string) time.Time {
	t, err := ParseISODate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISODate)
}

// DateOnly truncates t to midnight UTC of its own calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays moves a date by whole calendar days, DST-free.
func AddDays(t time.Time, days int) time.Time {
	return DateOnly(t).AddDate(0, 0, days)
}

// DaysBetween is the number of whole days from start to end, never negative.
func DaysBetween(start, end time.Time) int {
	d := int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// DaysBetweenInclusive counts both endpoints; 0 when end precedes start.
func DaysBetweenInclusive(start, end time.Time) int {
	if DateOnly(end).Before(DateOnly(start)) {
		return 0
	}
	return DaysBetween(start, end) + 1
}
