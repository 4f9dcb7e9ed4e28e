// Package selection decides which commits fall inside a brushed region and
// derives the count and line-type breakdown views from that choice.
package selection

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
)

// ErrInvalidRegion indicates a region that cannot be decoded.
var ErrInvalidRegion = errors.New("invalid region")

// Point is a position in visual coordinate space.
type Point struct {
	X float64
	Y float64
}

// Region is a rectangle [[x0,y0],[x1,y1]] in visual coordinate space.
// A nil *Region means no active selection.
type Region struct {
	Min Point
	Max Point
}

// NewRegion builds a region from two corners given in any order.
func NewRegion(x0, y0, x1, y1 float64) *Region {
	return &Region{
		Min: Point{X: min(x0, x1), Y: min(y0, y1)},
		Max: Point{X: max(x0, x1), Y: max(y0, y1)},
	}
}

// FromCorners converts the [[x0,y0],[x1,y1]] form into a region.
func FromCorners(corners [][]float64) (*Region, error) {
	if corners == nil {
		return nil, nil
	}

	const dims = 2

	if len(corners) != dims || len(corners[0]) != dims || len(corners[1]) != dims {
		return nil, fmt.Errorf("%w: want [[x0,y0],[x1,y1]]", ErrInvalidRegion)
	}

	return NewRegion(corners[0][0], corners[0][1], corners[1][0], corners[1][1]), nil
}

// Corners returns the [[x0,y0],[x1,y1]] form of r, or nil for no selection.
func (r *Region) Corners() [][]float64 {
	if r == nil {
		return nil
	}

	return [][]float64{{r.Min.X, r.Min.Y}, {r.Max.X, r.Max.Y}}
}

// Contains reports whether p lies inside r, bounds included.
func (r *Region) Contains(p Point) bool {
	if r == nil {
		return false
	}

	return r.Min.X <= p.X && p.X <= r.Max.X && r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// TimeMapper maps a commit timestamp to the x coordinate.
type TimeMapper func(time.Time) float64

// HourMapper maps a fractional hour to the y coordinate.
type HourMapper func(float64) float64

// Mapping holds the coordinate functions supplied by the rendering layer.
type Mapping struct {
	X TimeMapper
	Y HourMapper
}

// Identity maps a timestamp to Unix seconds and an hour to itself.
func Identity() Mapping {
	return Mapping{
		X: func(ts time.Time) float64 { return float64(ts.Unix()) },
		Y: func(h float64) float64 { return h },
	}
}

// PointOf returns the visual position of c under m.
func (m Mapping) PointOf(c commits.Summary) Point {
	return Point{X: m.X(c.Datetime), Y: m.Y(c.HourFrac)}
}

// IsSelected reports whether c falls inside sel under m. A nil selection
// selects nothing. Mapped values are compared at face value.
func IsSelected(sel *Region, c commits.Summary, m Mapping) bool {
	if sel == nil {
		return false
	}

	return sel.Contains(m.PointOf(c))
}

// Filter returns the summaries selected by sel, in input order.
func Filter(sel *Region, summaries []commits.Summary, m Mapping) []commits.Summary {
	if sel == nil {
		return nil
	}

	var out []commits.Summary

	for _, c := range summaries {
		if IsSelected(sel, c, m) {
			out = append(out, c)
		}
	}

	return out
}
