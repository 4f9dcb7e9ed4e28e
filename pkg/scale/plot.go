package scale

import (
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// Scatter plot geometry.
const (
	PlotWidth  = 1000
	PlotHeight = 600

	MarginTop    = 10
	MarginRight  = 10
	MarginBottom = 30
	MarginLeft   = 40

	HoursPerDay = 24

	MinRadius = 2
	MaxRadius = 30
)

// Area is the usable drawing rectangle inside the margins.
type Area struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// PlotArea returns the usable area of the default scatter plot.
func PlotArea() Area {
	return Area{
		Left:   MarginLeft,
		Right:  PlotWidth - MarginRight,
		Top:    MarginTop,
		Bottom: PlotHeight - MarginBottom,
	}
}

// Plot bundles the scales of one scatter plot.
type Plot struct {
	Area   Area
	X      Time
	Y      Linear
	Radius Sqrt
}

// NewPlot builds the scales for summaries: x spans the commit time extent
// rounded out to whole days, y runs 0..24 hours bottom to top, and the radius
// grows with the square root of TotalLines.
func NewPlot(summaries []commits.Summary) Plot {
	area := PlotArea()
	lo, hi := Extent(summaries)
	minLines, maxLines := LineExtent(summaries)

	return Plot{
		Area: area,
		X: Time{
			Domain: [2]time.Time{lo, hi},
			Range:  [2]float64{area.Left, area.Right},
		}.Nice(),
		Y: Linear{
			Domain: [2]float64{0, HoursPerDay},
			Range:  [2]float64{area.Bottom, area.Top},
		},
		Radius: Sqrt{
			Domain: [2]float64{float64(minLines), float64(maxLines)},
			Range:  [2]float64{MinRadius, MaxRadius},
		},
	}
}

// Mapping returns the plot's coordinate functions for selection.
func (p Plot) Mapping() selection.Mapping {
	return selection.Mapping{X: p.X.Map, Y: p.Y.Map}
}

// Extent returns the earliest and latest commit timestamps. An empty input
// yields the zero time twice.
func Extent(summaries []commits.Summary) (time.Time, time.Time) {
	if len(summaries) == 0 {
		return time.Time{}, time.Time{}
	}

	lo, hi := summaries[0].Datetime, summaries[0].Datetime

	for _, s := range summaries[1:] {
		if s.Datetime.Before(lo) {
			lo = s.Datetime
		}

		if s.Datetime.After(hi) {
			hi = s.Datetime
		}
	}

	return lo, hi
}

// LineExtent returns the smallest and largest TotalLines, each at least 1.
func LineExtent(summaries []commits.Summary) (int, int) {
	if len(summaries) == 0 {
		return 1, 1
	}

	lo, hi := summaries[0].TotalLines, summaries[0].TotalLines

	for _, s := range summaries[1:] {
		lo = min(lo, s.TotalLines)
		hi = max(hi, s.TotalLines)
	}

	return max(lo, 1), max(hi, 1)
}

// DomainRegion converts a time window and an hour band into a plot-space
// selection region for p.
func (p Plot) DomainRegion(from, to time.Time, hourMin, hourMax float64) *selection.Region {
	return selection.NewRegion(p.X.Map(from), p.Y.Map(hourMin), p.X.Map(to), p.Y.Map(hourMax))
}
