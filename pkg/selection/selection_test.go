package selection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// dayMapping places commits on x by day of month and y by hour.
func dayMapping() selection.Mapping {
	return selection.Mapping{
		X: func(ts time.Time) float64 { return float64(ts.Day()) },
		Y: func(h float64) float64 { return h },
	}
}

func rec(commit, typ string, day, hour int) loc.Record {
	return loc.Record{
		Commit:   commit,
		Type:     typ,
		Datetime: time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC),
	}
}

// fixture is commit A (day 1, 10h) with 3 js and 1 css line and
// commit B (day 5, 20h) with 2 js lines.
func fixture() *commits.Collection {
	return commits.Aggregate([]loc.Record{
		rec("A", "js", 1, 10),
		rec("A", "js", 1, 10),
		rec("A", "css", 1, 10),
		rec("A", "js", 1, 10),
		rec("B", "js", 5, 20),
		rec("B", "js", 5, 20),
	}, commits.Options{})
}

func TestIsSelected_NilSelection(t *testing.T) {
	t.Parallel()

	for _, c := range fixture().Summaries() {
		assert.False(t, selection.IsSelected(nil, c, dayMapping()))
	}
}

func TestIsSelected_InclusiveBounds(t *testing.T) {
	t.Parallel()

	coll := fixture()
	a, _ := coll.Get("A")

	tests := []struct {
		name   string
		region *selection.Region
		want   bool
	}{
		{"inside", selection.NewRegion(0, 5, 2, 15), true},
		{"left edge", selection.NewRegion(1, 5, 2, 15), true},
		{"right edge", selection.NewRegion(0, 5, 1, 15), true},
		{"top edge", selection.NewRegion(0, 10, 2, 15), true},
		{"bottom edge", selection.NewRegion(0, 5, 2, 10), true},
		{"degenerate point", selection.NewRegion(1, 10, 1, 10), true},
		{"left of", selection.NewRegion(1.01, 5, 2, 15), false},
		{"above", selection.NewRegion(0, 10.01, 2, 15), false},
		{"reversed corners", selection.NewRegion(2, 15, 0, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, selection.IsSelected(tt.region, a, dayMapping()))
		})
	}
}

func TestIsSelected_IdentityMapping(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	c := commits.Summary{Datetime: ts, HourFrac: 12.5}
	x := float64(ts.Unix())

	assert.True(t, selection.IsSelected(selection.NewRegion(x, 12.5, x, 12.5), c, selection.Identity()))
	assert.False(t, selection.IsSelected(selection.NewRegion(x+1, 0, x+2, 24), c, selection.Identity()))
}

func TestFilter_PreservesOrder(t *testing.T) {
	t.Parallel()

	summaries := fixture().Summaries()

	all := selection.Filter(selection.NewRegion(0, 0, 31, 24), summaries, dayMapping())
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].ID)
	assert.Equal(t, "B", all[1].ID)

	assert.Nil(t, selection.Filter(nil, summaries, dayMapping()))
}

func TestFromCorners(t *testing.T) {
	t.Parallel()

	r, err := selection.FromCorners([][]float64{{5, 9}, {1, 3}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 3}, {5, 9}}, r.Corners())

	none, err := selection.FromCorners(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Nil(t, none.Corners())

	_, err = selection.FromCorners([][]float64{{1, 2}})
	require.ErrorIs(t, err, selection.ErrInvalidRegion)

	_, err = selection.FromCorners([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, selection.ErrInvalidRegion)
}
