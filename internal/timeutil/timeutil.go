package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// DefaultHour is the start hour used when a date comes without a time.
	DefaultHour = 9
)

var defaultLocation = time.UTC

// ResolveLocation returns the named location with UTC fallback. The bool
// reports whether the fallback was used.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// ParseClock parses an HH:MM time of day.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to parse time: %s", value)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDateWithDefaultTime parses a date-only string in the provided timezone at a default clock time.
func ParseDateWithDefaultTime(value, timezone string, defaultHour, defaultMinute int) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, fmt.Errorf("date value is required")
	}

	loc, fallback := ResolveLocation(timezone)
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fallback, fmt.Errorf("unable to parse date: %s", value)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), defaultHour, defaultMinute, 0, 0, loc), fallback, nil
}

// Combine joins a YYYY-MM-DD date and an optional HH:MM clock time into an
// instant in timezone. An empty clock means DefaultHour:00.
func Combine(date, clock, timezone string) (time.Time, bool, error) {
	hour, minute := DefaultHour, 0
	if clock != "" {
		var err error
		hour, minute, err = ParseClock(clock)
		if err != nil {
			return time.Time{}, false, err
		}
	}
	return ParseDateWithDefaultTime(date, timezone, hour, minute)
}
