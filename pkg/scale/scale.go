// Package scale provides the coordinate mappings used to place commits on
// the scatter plot: a time scale for x, a linear hour scale for y and a
// square-root scale for point radius.
package scale

import (
	"math"
	"time"
)

// midpoint is returned by normalize for a degenerate domain.
const midpoint = 0.5

func normalize(v, d0, d1 float64) float64 {
	span := d1 - d0
	if span == 0 {
		return midpoint
	}

	return (v - d0) / span
}

func interpolate(t float64, r [2]float64) float64 {
	return r[0] + t*(r[1]-r[0])
}

// Linear maps a numeric domain onto a range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the range value for v. Values outside the domain extrapolate.
func (l Linear) Map(v float64) float64 {
	return interpolate(normalize(v, l.Domain[0], l.Domain[1]), l.Range)
}

// Invert returns the domain value for a range value r.
func (l Linear) Invert(r float64) float64 {
	return interpolate(normalize(r, l.Range[0], l.Range[1]), l.Domain)
}

// Sqrt maps a numeric domain onto a range through a square root, so that
// area rather than radius grows linearly with the value.
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the range value for v.
func (s Sqrt) Map(v float64) float64 {
	return interpolate(normalize(signedSqrt(v), signedSqrt(s.Domain[0]), signedSqrt(s.Domain[1])), s.Range)
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}

	return math.Sqrt(v)
}

// Time maps a time domain onto a numeric range.
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// Map returns the range value for ts.
func (t Time) Map(ts time.Time) float64 {
	d0 := float64(t.Domain[0].UnixMilli())
	d1 := float64(t.Domain[1].UnixMilli())

	return interpolate(normalize(float64(ts.UnixMilli()), d0, d1), t.Range)
}

// Invert returns the time for a range value r.
func (t Time) Invert(r float64) time.Time {
	d0 := float64(t.Domain[0].UnixMilli())
	d1 := float64(t.Domain[1].UnixMilli())

	ms := interpolate(normalize(r, t.Range[0], t.Range[1]), [2]float64{d0, d1})

	return time.UnixMilli(int64(math.Round(ms))).In(t.Domain[0].Location())
}

// Nice extends the domain outward to whole days in the domain's location.
func (t Time) Nice() Time {
	lo, hi := t.Domain[0], t.Domain[1]

	start := time.Date(lo.Year(), lo.Month(), lo.Day(), 0, 0, 0, 0, lo.Location())

	end := time.Date(hi.Year(), hi.Month(), hi.Day(), 0, 0, 0, 0, hi.Location())
	if end.Before(hi) || !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return Time{Domain: [2]time.Time{start, end}, Range: t.Range}
}
