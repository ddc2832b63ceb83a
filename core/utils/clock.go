package utils

import (
	"fmt"
	"time"

	"appointease/core/constants"
)

// ParseClock parses a 24h "HH:MM" wall-clock string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	// time.Parse accepts single-digit hours; the wire format is strict HH:MM.
	if len(s) != len(constants.ClockLayout) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	t, err := time.Parse(constants.ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM". Values are clamped
// to [0, 23:59].
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > constants.EndOfDayMinutes {
		minutes = constants.EndOfDayMinutes
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate renders a calendar date as "YYYY-MM-DD".
func FormatDate(d time.Time) string {
	return d.Format(constants.DateLayout)
}
