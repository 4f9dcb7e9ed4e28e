package gitlib

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a time string cannot be parsed.
var ErrInvalidTimeFormat = errors.New("cannot parse time")

// ParseTime parses a time string in one of these forms:
// a duration before now ("24h"), RFC3339 ("2024-01-01T00:00:00Z")
// or a date in loc ("2024-01-01").
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	d, durationErr := time.ParseDuration(s)
	if durationErr == nil {
		return time.Now().Add(-d), nil
	}

	parsedTime, rfc3339Err := time.Parse(time.RFC3339, s)
	if rfc3339Err == nil {
		return parsedTime, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	parsedTime, dateOnlyErr := time.ParseInLocation(time.DateOnly, s, loc)
	if dateOnlyErr == nil {
		return parsedTime, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}
