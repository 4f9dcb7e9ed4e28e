package plotpage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// Page file names.
const (
	IndexPage    = "index.html"
	ProjectsPage = "projects.html"
	MetaPage     = "meta.html"
)

const (
	statColumns    = 3
	projectColumns = 3
	githubColumns  = 4
	avgFormat      = "#,###.##"
	dirPerm        = 0o755
)

// SiteData is everything the site pages are built from.
type SiteData struct {
	Store       *loc.Store
	Commits     *commits.Collection
	Projects    []projects.Project
	ProjectsErr error
	// Selection preselects a plot-space region on the meta page; nil shows
	// the breakdown of every commit.
	Selection *selection.Region
	GitHub    *github.ProfileStats
	GitHubErr error
}

// Site writes the static portfolio pages.
type Site struct {
	OutputDir  string
	SiteName   string
	Theme      Theme
	Location   *time.Location
	Latest     int
	GitHubUser string
}

// Nav returns the navigation shared by every page.
func (s *Site) Nav() []NavLink {
	nav := []NavLink{
		{Href: IndexPage, Title: "Home"},
		{Href: ProjectsPage, Title: "Projects"},
		{Href: MetaPage, Title: "Meta"},
	}

	if s.GitHubUser != "" {
		nav = append(nav, NavLink{Href: "https://github.com/" + s.GitHubUser, Title: "GitHub", External: true})
	}

	return nav
}

// Render writes index.html, projects.html and meta.html into OutputDir.
func (s *Site) Render(data SiteData) error {
	if s.OutputDir == "" {
		return ErrNoOutputDir
	}

	err := os.MkdirAll(s.OutputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	meta, err := s.MetaPage(data)
	if err != nil {
		return err
	}

	pages := []*Page{
		s.IndexPage(data),
		s.ProjectsPage(data.Projects, data.ProjectsErr),
		meta,
	}

	for _, page := range pages {
		writeErr := s.writePage(page)
		if writeErr != nil {
			return writeErr
		}
	}

	return nil
}

func (s *Site) newPage(id, title, description string) *Page {
	page := NewPage(title, description)
	page.ID = id
	page.Theme = s.Theme
	page.Nav = s.Nav()

	if s.SiteName != "" {
		page.SiteName = s.SiteName
	}

	return page
}

func (s *Site) writePage(page *Page) error {
	outPath := filepath.Join(s.OutputDir, page.ID)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	renderErr := HTMLRenderer{}.Render(f, page)
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", page.ID, renderErr)
	}

	return nil
}

// IndexPage builds the home page: latest projects and GitHub profile stats.
func (s *Site) IndexPage(data SiteData) *Page {
	page := s.newPage(IndexPage, "Home", "")

	latest := projects.Latest(data.Projects, s.Latest)
	page.Add(Section{
		Title: "Latest Projects",
		Chart: ProjectCards(latest),
	})

	page.Add(Section{
		Title: "My GitHub Stats",
		Chart: GitHubStats(data.GitHub, data.GitHubErr),
	})

	return page
}

// ProjectsPage builds the project listing with its per-year pie. A load
// error replaces the listing with the failure message.
func (s *Site) ProjectsPage(list []projects.Project, loadErr error) *Page {
	page := s.newPage(ProjectsPage, fmt.Sprintf("%d Projects", len(list)), "")

	if loadErr != nil {
		page.Add(Section{Chart: NewAlert("", projects.FailureMessage, ToneError)})

		return page
	}

	if len(list) == 0 {
		page.Add(Section{Chart: NewText("No projects")})

		return page
	}

	co := NewChartOpts(s.Theme)
	page.Add(
		Section{
			Title:    "Projects per Year",
			Subtitle: "Each slice is one year of the listing.",
			Chart:    WrapChart(YearPie(co, GetChartPalette(s.Theme), projects.PerYear(list))),
		},
		Section{Chart: ProjectCards(list)},
	)

	return page
}

// MetaPage builds the code statistics page: summary figures, the brushable
// commit scatter plot and the line type breakdown.
func (s *Site) MetaPage(data SiteData) (*Page, error) {
	page := s.newPage(MetaPage, "Meta", "Stats about this site's own code.")

	if data.Store == nil || data.Commits == nil || data.Commits.Len() == 0 {
		page.Add(Section{Chart: NewAlert("No data", "The line dataset is empty.", ToneInfo)})

		return page, nil
	}

	co := NewChartOpts(s.Theme)
	palette := GetChartPalette(s.Theme)
	summaries := data.Commits.Summaries()
	views := selection.Recompute(
		selection.State{Selection: data.Selection},
		data.Commits,
		scale.NewPlot(summaries).Mapping(),
	)

	scatter := CommitScatter(co, summaries, s.Location)

	err := EnableBrush(scatter, data.Commits, palette)
	if err != nil {
		return nil, err
	}

	pie := BreakdownPie(co, palette, views.Breakdown)
	pie.ChartID = breakdownChartID

	page.Add(
		Section{
			Title: "Summary",
			Chart: StatsGrid(commits.Stats(data.Store, data.Commits), summaries),
		},
		Section{
			Title:    "Commits by time of day",
			Subtitle: "Each dot is a commit; its size follows the lines it still owns.",
			Hint: Hint{
				Title: "Reading the plot",
				Items: []string{
					"The x axis is the commit date, the y axis its hour of day.",
					"Hover a dot for the commit id, time, author and line count.",
					"Drag a rectangle to select commits; the breakdown follows the selection.",
				},
			},
			Chart: WrapChart(scatter),
		},
		Section{
			Title: "Line types",
			Chart: Group{
				SelectionCount(views.Count.Label),
				WrapChart(pie),
				BreakdownTable(views.Breakdown),
			},
		},
	)

	return page, nil
}

// StatsGrid renders the summary figures of the dataset.
func StatsGrid(st commits.InfoStats, summaries []commits.Summary) *Grid {
	items := []Renderable{
		NewStat("Total LOC", humanize.Comma(int64(st.TotalLOC))),
		NewStat("Total commits", humanize.Comma(int64(st.TotalCommits))),
		NewStat("Files", humanize.Comma(int64(st.Files))),
		NewStat("Max depth", humanize.Comma(int64(st.MaxDepth))),
		NewStat("Average depth", humanize.FormatFloat(avgFormat, st.AverageDepth)),
		NewStat("Average file length", humanize.Comma(int64(st.AverageFileLength))),
	}

	if len(summaries) > 0 {
		_, last := scale.Extent(summaries)
		items = append(items, NewStat("Last commit", humanize.Time(last)))
	}

	return NewGrid(statColumns, items...)
}

// BreakdownTable lists line counts and percentages per type.
func BreakdownTable(view selection.BreakdownView) Renderable {
	if view.NoData {
		return NewText("No lines")
	}

	table := NewTable("Type", "Lines", "Share")
	for _, e := range view.Entries {
		table.AddRow(e.Type, humanize.Comma(int64(e.Count)), e.Percent())
	}

	return table
}

// ProjectCards renders one card per project.
func ProjectCards(list []projects.Project) Renderable {
	if len(list) == 0 {
		return NewText("No projects")
	}

	cards := make([]Renderable, len(list))

	for i, p := range list {
		card := NewCard(p.Title, p.Description)
		card.Image = p.Image
		card.Link = p.URL

		if p.Year != "" {
			card.WithContent(NewBadge(p.Year, ToneAccent))
		}

		cards[i] = card
	}

	return NewGrid(projectColumns, cards...)
}

// GitHubStats renders the profile counters, or the failure message when they
// could not be loaded.
func GitHubStats(stats *github.ProfileStats, err error) Renderable {
	if err != nil || stats == nil {
		return NewAlert("", github.FailureMessage, ToneError)
	}

	return NewGrid(githubColumns,
		NewStat("Public Repos", humanize.Comma(int64(stats.PublicRepos))),
		NewStat("Public Gists", humanize.Comma(int64(stats.PublicGists))),
		NewStat("Followers", humanize.Comma(int64(stats.Followers))),
		NewStat("Following", humanize.Comma(int64(stats.Following))),
	)
}
