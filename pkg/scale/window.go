package scale

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// Window errors.
var (
	// ErrBadHours indicates an hour band outside [0, 24] or with min above max.
	ErrBadHours = errors.New("hours must lie within [0, 24]")
	// ErrBadTime indicates an unparsable window bound.
	ErrBadTime = errors.New("time must be RFC 3339 or YYYY-MM-DD")
)

// HourBand resolves an hour band. A nil hourMax means the end of the day.
func HourBand(hourMin float64, hourMax *float64) (float64, float64, error) {
	hi := float64(HoursPerDay)
	if hourMax != nil {
		hi = *hourMax
	}

	if hourMin < 0 || hi > HoursPerDay || hourMin > hi {
		return 0, 0, fmt.Errorf("%w: %g..%g", ErrBadHours, hourMin, hi)
	}

	return hourMin, hi, nil
}

// ParseBound parses a window bound given as RFC 3339 or a bare UTC date.
// A bare date used as the upper bound covers that whole day.
func ParseBound(s string, upper bool) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}

	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return t, nil
}

// WindowRegion validates the hour band and converts the window into a
// plot-space region for p.
func (p Plot) WindowRegion(from, to time.Time, hourMin float64, hourMax *float64) (*selection.Region, error) {
	lo, hi, err := HourBand(hourMin, hourMax)
	if err != nil {
		return nil, err
	}

	return p.DomainRegion(from, to, lo, hi), nil
}
