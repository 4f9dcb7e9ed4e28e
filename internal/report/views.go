package report

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// avgFormat keeps two decimals, like the site.
const avgFormat = "#,###.##"

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// Stats prints the dataset summary figures.
func (r *Reporter) Stats(st commits.InfoStats) error {
	if r.Structured() {
		return r.encode(st)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Total LOC", comma(st.TotalLOC)},
		{"Total commits", comma(st.TotalCommits)},
		{"Files", comma(st.Files)},
		{"Max depth", comma(st.MaxDepth)},
		{"Average depth", humanize.FormatFloat(avgFormat, st.AverageDepth)},
		{"Average file length", comma(st.AverageFileLength)},
	})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	return r.render("Summary", tbl)
}

// Commits prints one row per commit summary.
func (r *Reporter) Commits(summaries []commits.Summary) error {
	if r.Structured() {
		return r.encode(summaries)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Commit", "Date", "Time", "Author", "Lines", "Age"})

	for _, s := range summaries {
		info := commits.Tooltip(s, r.location)
		tbl.AppendRow(table.Row{
			info.ShortID,
			info.Date,
			info.Time,
			info.Author,
			comma(info.Lines),
			humanize.RelTime(s.Datetime, r.now(), "ago", "from now"),
		})
	}

	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight}})
	tbl.AppendFooter(table.Row{"", "", "", "Total", comma(len(summaries)) + " commits"})

	return r.render("Commits", tbl)
}

// Selection prints the count label and the line type breakdown.
func (r *Reporter) Selection(views selection.Views) error {
	if r.Structured() {
		return r.encode(views)
	}

	labelColor := color.FgGreen
	if len(views.Count.Selected) == 0 {
		labelColor = color.FgYellow
	}

	_, err := r.paint(labelColor).Fprintln(r.out, views.Count.Label)
	if err != nil {
		return fmt.Errorf("write selection label: %w", err)
	}

	return r.Breakdown(views.Breakdown)
}

// Breakdown prints lines and shares per type.
func (r *Reporter) Breakdown(view selection.BreakdownView) error {
	if r.Structured() {
		return r.encode(view)
	}

	if view.NoData {
		_, err := r.paint(color.FgYellow).Fprintln(r.out, "No lines")
		if err != nil {
			return fmt.Errorf("write breakdown: %w", err)
		}

		return nil
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Type", "Lines", "Share"})

	for _, e := range view.Entries {
		tbl.AppendRow(table.Row{e.Type, comma(e.Count), e.Percent()})
	}

	tbl.AppendFooter(table.Row{"Total", comma(view.TotalLines), ""})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	return r.render("Breakdown", tbl)
}

// ProjectListing is the structured form of a filtered listing.
type ProjectListing struct {
	Filter   projects.Filter      `json:"filter"   yaml:"filter"`
	Projects []projects.Project   `json:"projects" yaml:"projects"`
	PerYear  []projects.YearCount `json:"perYear"  yaml:"per_year"`
}

// Projects prints the filtered projects followed by per-year counts.
func (r *Reporter) Projects(listing ProjectListing) error {
	if r.Structured() {
		return r.encode(listing)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Title", "Year", "Description"})

	for _, p := range listing.Projects {
		tbl.AppendRow(table.Row{p.Title, p.Year, p.Description})
	}

	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: 60}})

	title := strconv.Itoa(len(listing.Projects)) + " Projects"

	err := r.render(title, tbl)
	if err != nil {
		return err
	}

	return r.Years(listing.PerYear)
}

// Years prints the number of projects per year.
func (r *Reporter) Years(counts []projects.YearCount) error {
	if r.Structured() {
		return r.encode(counts)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Year", "Projects"})

	for _, c := range counts {
		tbl.AppendRow(table.Row{c.Label, comma(c.Value)})
	}

	return r.render("Per year", tbl)
}

// GitHub prints profile counters, or the failure message when fetchErr is set.
func (r *Reporter) GitHub(stats *github.ProfileStats, fetchErr error) error {
	if fetchErr != nil || stats == nil {
		if r.Structured() {
			return r.encode(map[string]string{"error": github.FailureMessage})
		}

		_, err := r.paint(color.FgRed).Fprintln(r.out, github.FailureMessage)
		if err != nil {
			return fmt.Errorf("write github stats: %w", err)
		}

		return nil
	}

	if r.Structured() {
		return r.encode(stats)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Public Repos", "Public Gists", "Followers", "Following"})
	tbl.AppendRow(table.Row{
		comma(stats.PublicRepos),
		comma(stats.PublicGists),
		comma(stats.Followers),
		comma(stats.Following),
	})

	return r.render("@"+stats.Login, tbl)
}
