package scale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

func hours(v float64) *float64 { return &v }

func TestHourBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		min     float64
		max     *float64
		wantMin float64
		wantMax float64
		wantErr bool
	}{
		{name: "default end of day", min: 6, wantMin: 6, wantMax: 24},
		{name: "explicit", min: 6, max: hours(12), wantMin: 6, wantMax: 12},
		{name: "midnight only", min: 0, max: hours(0), wantMin: 0, wantMax: 0},
		{name: "negative", min: -1, wantErr: true},
		{name: "past midnight", min: 0, max: hours(25), wantErr: true},
		{name: "inverted", min: 12, max: hours(6), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lo, hi, err := scale.HourBand(tt.min, tt.max)
			if tt.wantErr {
				require.ErrorIs(t, err, scale.ErrBadHours)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantMin, lo, 1e-9)
			assert.InDelta(t, tt.wantMax, hi, 1e-9)
		})
	}
}

func TestParseBound(t *testing.T) {
	t.Parallel()

	from, err := scale.ParseBound("2025-01-08", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), from)

	to, err := scale.ParseBound("2025-01-08", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 23, 59, 59, 999999999, time.UTC), to)

	exact, err := scale.ParseBound("2025-01-08T12:00:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC), exact)

	_, err = scale.ParseBound("monday", false)
	require.ErrorIs(t, err, scale.ErrBadTime)
}

func TestPlot_WindowRegion_SameDay(t *testing.T) {
	t.Parallel()

	summaries := []commits.Summary{
		{ID: "early", Datetime: time.Date(2025, 1, 6, 9, 15, 0, 0, time.UTC), HourFrac: 9.25, TotalLines: 2},
		{ID: "late", Datetime: time.Date(2025, 1, 8, 21, 45, 0, 0, time.UTC), HourFrac: 21.75, TotalLines: 1},
	}

	plot := scale.NewPlot(summaries)

	from, err := scale.ParseBound("2025-01-08", false)
	require.NoError(t, err)

	to, err := scale.ParseBound("2025-01-08", true)
	require.NoError(t, err)

	region, err := plot.WindowRegion(from, to, 0, nil)
	require.NoError(t, err)

	selected := selection.Filter(region, summaries, plot.Mapping())
	require.Len(t, selected, 1)
	assert.Equal(t, "late", selected[0].ID)

	_, err = plot.WindowRegion(from, to, 5, hours(4))
	require.ErrorIs(t, err, scale.ErrBadHours)
}
