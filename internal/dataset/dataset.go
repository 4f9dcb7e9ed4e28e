// Package dataset loads the line records and derives the commit collection,
// plot scales and summary figures the serving layers share.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// Dataset is an immutable snapshot of one loaded loc.csv.
type Dataset struct {
	Store    *loc.Store
	Commits  *commits.Collection
	Plot     scale.Plot
	Stats    commits.InfoStats
	LoadedAt time.Time
}

// New aggregates store into a dataset. Commits whose records disagree are
// reported on logger; the first record of each commit wins.
func New(ctx context.Context, store *loc.Store, opts commits.Options, logger *slog.Logger) *Dataset {
	records := store.Records()

	if logger != nil {
		for _, id := range commits.Conflicts(records) {
			logger.WarnContext(ctx, "commit records disagree, using the first", "commit", id)
		}
	}

	coll := commits.Aggregate(records, opts)

	return &Dataset{
		Store:    store,
		Commits:  coll,
		Plot:     scale.NewPlot(coll.Summaries()),
		Stats:    commits.Stats(store, coll),
		LoadedAt: time.Now(),
	}
}

// Load reads the CSV at path and aggregates it.
func Load(ctx context.Context, path string, opts commits.Options, logger *slog.Logger) (*Dataset, error) {
	store, err := loc.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	ds := New(ctx, store, opts, logger)

	if logger != nil {
		logger.InfoContext(ctx, "dataset loaded",
			"path", path, "lines", store.Len(), "commits", ds.Commits.Len())
	}

	return ds, nil
}

// Mapping returns the plot-space mapping used for selection.
func (d *Dataset) Mapping() selection.Mapping {
	return d.Plot.Mapping()
}

// Select runs one selection change in a fresh session and returns its views.
func (d *Dataset) Select(region *selection.Region) selection.Views {
	return selection.NewSession(d.Commits, d.Mapping()).OnSelectionChange(region)
}

// SelectDomain selects the commits inside a time window and hour band.
func (d *Dataset) SelectDomain(from, to time.Time, hourMin, hourMax float64) selection.Views {
	return d.Select(d.Plot.DomainRegion(from, to, hourMin, hourMax))
}
