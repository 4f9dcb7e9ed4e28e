package plotpage

import (
	"fmt"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

const (
	scatterWidth  = "1000px"
	scatterHeight = "600px"
	pieWidth      = "600px"
	pieHeight     = "400px"
	pieRadius     = "65%"

	// Renders y values as zero-padded "HH:00" labels.
	hourLabelJS = `function (v) { return String(v).padStart(2, '0') + ':00'; }`
)

// TooltipText flattens the hover content of one commit into a single line.
func TooltipText(info commits.TooltipInfo) string {
	return fmt.Sprintf("%s · %s %s · %s · %d lines", info.ShortID, info.Date, info.Time, info.Author, info.Lines)
}

// CommitScatter plots one dot per commit: x is the commit time, y the hour of
// day, and the dot area grows with the lines the commit still owns. Larger
// commits are drawn first so small ones stay visible on top.
func CommitScatter(co *ChartOpts, summaries []commits.Summary, loc *time.Location) *charts.Scatter {
	if co == nil {
		co = DefaultChartOpts()
	}

	plot := scale.NewPlot(summaries)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(scatterWidth, scatterHeight)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}"}),
		charts.WithGridOpts(opts.Grid{
			Top:    fmt.Sprint(scale.MarginTop),
			Right:  fmt.Sprint(scale.MarginRight),
			Bottom: fmt.Sprint(scale.MarginBottom),
			Left:   fmt.Sprint(scale.MarginLeft),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "time",
			Min:       plot.X.Domain[0].UnixMilli(),
			Max:       plot.X.Domain[1].UnixMilli(),
			AxisLabel: &opts.AxisLabel{Color: co.TextMutedColor()},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: co.AxisColor()}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  0,
			Max:  scale.HoursPerDay,
			AxisLabel: &opts.AxisLabel{
				Color:     co.TextMutedColor(),
				Formatter: opts.FuncOpts(hourLabelJS),
			},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: co.GridColor()},
			},
		}),
	)

	ordered := commits.SortBySize(summaries)
	data := make([]opts.ScatterData, len(ordered))

	for i, s := range ordered {
		data[i] = opts.ScatterData{
			Name:       TooltipText(commits.Tooltip(s, loc)),
			Value:      []any{s.Datetime.UnixMilli(), s.HourFrac, s.ID},
			SymbolSize: symbolSize(plot.Radius.Map(float64(s.TotalLines))),
		}
	}

	scatter.AddSeries("Commits", data, charts.WithItemStyleOpts(co.PointStyle()))

	return scatter
}

// symbolSize converts a radius to the echarts symbol diameter.
func symbolSize(radius float64) int {
	return int(math.Round(2 * radius))
}

// BreakdownPie shows the line type proportions of the selected commits.
func BreakdownPie(co *ChartOpts, palette ChartPalette, view selection.BreakdownView) *charts.Pie {
	if co == nil {
		co = DefaultChartOpts()
	}

	items := make([]opts.PieData, len(view.Entries))
	for i, e := range view.Entries {
		items[i] = opts.PieData{
			Name:      e.Type,
			Value:     e.Count,
			ItemStyle: &opts.ItemStyle{Color: palette.Color(i)},
		}
	}

	return buildPie(co, "Lines", items)
}

// YearPie shows how many projects fall into each year.
func YearPie(co *ChartOpts, palette ChartPalette, counts []projects.YearCount) *charts.Pie {
	if co == nil {
		co = DefaultChartOpts()
	}

	items := make([]opts.PieData, len(counts))
	for i, c := range counts {
		items[i] = opts.PieData{
			Name:      c.Label,
			Value:     c.Value,
			ItemStyle: &opts.ItemStyle{Color: palette.Color(i)},
		}
	}

	return buildPie(co, "Projects", items)
}

func buildPie(co *ChartOpts, name string, items []opts.PieData) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithInitializationOpts(co.Init(pieWidth, pieHeight)),
		charts.WithLegendOpts(co.Legend()),
	)

	pie.AddSeries(name, items).
		SetSeriesOptions(
			charts.WithLabelOpts(co.PieLabel()),
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
		)

	return pie
}
