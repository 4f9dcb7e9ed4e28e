package plotpage

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
)

// Element ids the brush handler updates.
const (
	scatterChartID   = "commits"
	breakdownChartID = "breakdown"
	selectionCountID = "selection-count"

	outOfBrushAlpha = 0.15
)

// brushScript wires the rectangle brush on the commit scatter. On every
// brush change it rebuilds the count label and the breakdown pie from the
// selected commits, falling back to every commit when nothing is selected.
// Arguments: per-commit line types, palette, then the element ids.
const brushScript = `(function () {
var lines = %s;
var palette = %s;
var chart = goecharts_%s;
chart.setOption({
  toolbox: {show: true, feature: {brush: {type: ['rect', 'clear']}}},
  brush: {toolbox: ['rect', 'clear'], xAxisIndex: 'all', yAxisIndex: 'all', throttleType: 'debounce', throttleDelay: 50}
});
chart.on('brushselected', function (params) {
  var picked = {};
  var n = 0;
  var data = chart.getOption().series[0].data;
  params.batch[0].selected[0].dataIndex.forEach(function (i) {
    picked[data[i].value[2]] = true;
    n++;
  });
  var counts = {};
  var types = [];
  lines.forEach(function (c) {
    if (n > 0 && !picked[c.id]) { return; }
    c.types.forEach(function (t, k) {
      if (!(t in counts)) { counts[t] = 0; types.push(t); }
      counts[t] += c.counts[k];
    });
  });
  var label = document.getElementById('%s');
  if (label) { label.textContent = n > 0 ? n + ' commits selected' : 'No commits selected'; }
  if (typeof goecharts_%s !== 'undefined') {
    goecharts_%s.setOption({series: [{data: types.map(function (t, i) {
      return {name: t, value: counts[t], itemStyle: {color: palette[i %% palette.length]}};
    })}]});
  }
});
})();`

// commitTypes is the line-type tally of one commit, in first-seen order.
type commitTypes struct {
	ID     string   `json:"id"`
	Types  []string `json:"types"`
	Counts []int    `json:"counts"`
}

func lineTypes(coll *commits.Collection) []commitTypes {
	summaries := coll.Summaries()
	out := make([]commitTypes, len(summaries))

	for i, s := range summaries {
		c := commitTypes{ID: s.ID}
		index := map[string]int{}

		for _, r := range coll.LinesOf(s.ID) {
			cat := r.Category()

			j, ok := index[cat]
			if !ok {
				j = len(c.Types)
				index[cat] = j
				c.Types = append(c.Types, cat)
				c.Counts = append(c.Counts, 0)
			}

			c.Counts[j]++
		}

		out[i] = c
	}

	return out
}

// EnableBrush makes the scatter brushable and keeps the count label and the
// breakdown pie of the page in step with the brushed commits.
func EnableBrush(scatter *charts.Scatter, coll *commits.Collection, palette ChartPalette) error {
	linesJSON, err := json.Marshal(lineTypes(coll))
	if err != nil {
		return fmt.Errorf("encode line types: %w", err)
	}

	paletteJSON, err := json.Marshal(palette.Primary)
	if err != nil {
		return fmt.Errorf("encode palette: %w", err)
	}

	scatter.ChartID = scatterChartID
	scatter.SetGlobalOptions(charts.WithBrush(opts.Brush{
		XAxisIndex: "all",
		OutOfBrush: &opts.BrushOutOfBrush{ColorAlpha: outOfBrushAlpha},
	}))
	scatter.AddJSFuncs(fmt.Sprintf(brushScript,
		linesJSON, paletteJSON, scatterChartID,
		selectionCountID, breakdownChartID, breakdownChartID))

	return nil
}

// SelectionCount renders the count label the brush handler rewrites.
func SelectionCount(label string) Renderable {
	return rawHTML(fmt.Sprintf(`<p id="%s" class="text-sm font-semibold mb-2">%s</p>`,
		selectionCountID, template.HTMLEscapeString(label)))
}
