// Package commits groups line records into per-commit summaries.
//
// A Collection keeps the public summaries separate from the backing lines,
// which are reachable only through LinesOf.
package commits

import (
	"strings"
	"time"

	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

// DefaultRepoURL is the repository that commit links point at.
const DefaultRepoURL = "https://github.com/mkalsi13/portfolio"

const minutesPerHour = 60

// Summary is the aggregated view of all records sharing a commit id.
type Summary struct {
	ID         string    `json:"id" yaml:"id"`
	URL        string    `json:"url" yaml:"url"`
	Author     string    `json:"author" yaml:"author"`
	Date       string    `json:"date" yaml:"date"`
	Time       string    `json:"time" yaml:"time"`
	Timezone   string    `json:"timezone" yaml:"timezone"`
	Datetime   time.Time `json:"datetime" yaml:"datetime"`
	HourFrac   float64   `json:"hourFrac" yaml:"hour_frac"`
	TotalLines int       `json:"totalLines" yaml:"total_lines"`
}

// Options configures aggregation.
type Options struct {
	// RepoURL is the base for commit links. Empty uses DefaultRepoURL.
	RepoURL string
	// Location is the zone HourFrac is evaluated in. Nil keeps each
	// record's own offset.
	Location *time.Location
}

// Collection is an ordered, read-only set of summaries plus the private
// commit id to lines index.
type Collection struct {
	summaries []Summary
	byID      map[string]int
	lines     map[string][]loc.Record
}

// URL builds the deep link for commit id under base.
func URL(base, id string) string {
	return strings.TrimRight(base, "/") + "/commit/" + id
}

// HourFrac returns the fractional hour of day of ts, in [0, 24).
func HourFrac(ts time.Time) float64 {
	return float64(ts.Hour()) + float64(ts.Minute())/minutesPerHour
}

// Aggregate groups records by commit id, preserving first-appearance order.
// Commit-level fields come from the first record of each group.
func Aggregate(records []loc.Record, opts Options) *Collection {
	base := opts.RepoURL
	if base == "" {
		base = DefaultRepoURL
	}

	coll := &Collection{
		byID:  make(map[string]int),
		lines: make(map[string][]loc.Record),
	}

	for i := range records {
		rec := records[i]

		if _, ok := coll.byID[rec.Commit]; !ok {
			ts := rec.Datetime
			if opts.Location != nil {
				ts = ts.In(opts.Location)
			}

			coll.byID[rec.Commit] = len(coll.summaries)
			coll.summaries = append(coll.summaries, Summary{
				ID:       rec.Commit,
				URL:      URL(base, rec.Commit),
				Author:   rec.Author,
				Date:     rec.Date,
				Time:     rec.Time,
				Timezone: rec.Timezone,
				Datetime: rec.Datetime,
				HourFrac: HourFrac(ts),
			})
		}

		coll.lines[rec.Commit] = append(coll.lines[rec.Commit], rec)
	}

	for i := range coll.summaries {
		coll.summaries[i].TotalLines = len(coll.lines[coll.summaries[i].ID])
	}

	return coll
}

// Len returns the number of commits.
func (c *Collection) Len() int {
	return len(c.summaries)
}

// Summaries returns a copy of the summaries in first-appearance order.
func (c *Collection) Summaries() []Summary {
	out := make([]Summary, len(c.summaries))
	copy(out, c.summaries)

	return out
}

// Get returns the summary for id.
func (c *Collection) Get(id string) (Summary, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Summary{}, false
	}

	return c.summaries[i], true
}

// LinesOf returns a copy of the records of commit id, or nil for an unknown id.
func (c *Collection) LinesOf(id string) []loc.Record {
	lines, ok := c.lines[id]
	if !ok {
		return nil
	}

	out := make([]loc.Record, len(lines))
	copy(out, lines)

	return out
}

// EachLine calls fn for each record of the given commits, in order,
// without copying the backing index.
func (c *Collection) EachLine(ids []string, fn func(loc.Record)) {
	for _, id := range ids {
		for _, rec := range c.lines[id] {
			fn(rec)
		}
	}
}

// Conflicts returns the ids of commits whose records disagree on
// commit-level fields. Aggregate still uses the first record of such commits.
func Conflicts(records []loc.Record) []string {
	first := make(map[string]loc.Record)
	flagged := make(map[string]bool)

	var ids []string

	for i := range records {
		rec := records[i]

		ref, ok := first[rec.Commit]
		if !ok {
			first[rec.Commit] = rec
			continue
		}

		if flagged[rec.Commit] || sameProvenance(ref, rec) {
			continue
		}

		flagged[rec.Commit] = true
		ids = append(ids, rec.Commit)
	}

	return ids
}

func sameProvenance(a, b loc.Record) bool {
	return a.Author == b.Author &&
		a.Date == b.Date &&
		a.Time == b.Time &&
		a.Timezone == b.Timezone &&
		a.Datetime.Equal(b.Datetime)
}
