package selection

import (
	"math"
	"strconv"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

const (
	labelNone   = "No commits selected"
	labelSuffix = " commits selected"

	percentScale = 100
	percentPlace = 10
)

// CountView is the selection count display.
type CountView struct {
	Selected []commits.Summary `json:"selected" yaml:"selected"`
	Label    string            `json:"label" yaml:"label"`
}

// Entry is one line type in a breakdown.
type Entry struct {
	Type       string  `json:"type" yaml:"type"`
	Count      int     `json:"count" yaml:"count"`
	Proportion float64 `json:"proportion" yaml:"proportion"`
}

// Percent formats the proportion with at most one decimal, trailing zeros trimmed.
func (e Entry) Percent() string {
	return FormatPercent(e.Proportion)
}

// FormatPercent renders p in [0,1] as a percentage such as "83.3%" or "50%".
func FormatPercent(p float64) string {
	v := math.Round(p*percentScale*percentPlace) / percentPlace

	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// BreakdownView is the line-type breakdown display.
type BreakdownView struct {
	Entries    []Entry `json:"entries" yaml:"entries"`
	TotalLines int     `json:"totalLines" yaml:"total_lines"`
	NoData     bool    `json:"noData" yaml:"no_data"`
}

// CountLabel returns the label for n selected commits.
func CountLabel(n int) string {
	if n == 0 {
		return labelNone
	}

	return strconv.Itoa(n) + labelSuffix
}

// Count filters summaries through sel and labels the result.
func Count(sel *Region, summaries []commits.Summary, m Mapping) CountView {
	selected := Filter(sel, summaries, m)

	return CountView{Selected: selected, Label: CountLabel(len(selected))}
}

// Breakdown groups the lines of the selected commits by type. When nothing is
// selected, every commit in coll is used. NoData is set only when the chosen
// commits have no lines at all.
func Breakdown(sel *Region, coll *commits.Collection, m Mapping) BreakdownView {
	summaries := coll.Summaries()

	chosen := Filter(sel, summaries, m)
	if len(chosen) == 0 {
		chosen = summaries
	}

	return breakdownOf(coll, chosen)
}

func breakdownOf(coll *commits.Collection, chosen []commits.Summary) BreakdownView {
	ids := make([]string, len(chosen))
	for i, c := range chosen {
		ids[i] = c.ID
	}

	order := make(map[string]int)

	var (
		entries []Entry
		total   int
	)

	coll.EachLine(ids, func(rec loc.Record) {
		total++

		category := rec.Category()

		i, ok := order[category]
		if !ok {
			i = len(entries)
			order[category] = i
			entries = append(entries, Entry{Type: category})
		}

		entries[i].Count++
	})

	if total == 0 {
		return BreakdownView{NoData: true}
	}

	for i := range entries {
		entries[i].Proportion = float64(entries[i].Count) / float64(total)
	}

	return BreakdownView{Entries: entries, TotalLines: total}
}
