package timeutil

import (
	"fmt"
	"time"
)

var defaultLocation = time.Local

// ResolveLocation returns the location for a timezone name, falling back to
// the server's local zone when the name is empty or unknown.
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

// CombineDateTime builds a time.Time from a YYYY-MM-DD date and an HH:MM
// clock time in the given location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = defaultLocation
	}

	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", date)
	}

	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse time: %s", clock)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in the given location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = defaultLocation
	}

	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", date)
	}
	return d, nil
}
