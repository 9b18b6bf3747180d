package utils

import (
	"time"

	"github.com/jafarov01/cockpit/internal/constants"
)

// ParseDay parses a date string in the standard format (YYYY-MM-DD).
// The result is a UTC midnight, which keeps whole-day arithmetic exact.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// FormatDay formats a time as a date string in the standard format.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DayOf normalizes a wall-clock instant to the UTC midnight of its local
// calendar date, so it can be compared against ParseDay results.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the date string for the given instant's calendar day.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// AddDays shifts a date string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of whole days from one normalized day to
// another. Both arguments must come from ParseDay or DayOf.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
