package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/internal/plotpage"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

// NewRenderCommand writes the static portfolio site.
func NewRenderCommand(g *Globals) *cobra.Command {
	var (
		output   string
		region   string
		noGitHub bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the static portfolio site",
		Long: `Write index.html (latest projects, GitHub stats), projects.html (per-year
pie and project cards) and meta.html (commit stats, commit scatter and the
line-type breakdown).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			theme, err := plotpage.ParseTheme(rt.cfg.Render.Theme)
			if err != nil {
				return err
			}

			ctx, span := rt.providers.Tracer.Start(cmd.Context(), "codefolio.render")
			defer span.End()

			ds, err := rt.loadDataset(ctx)
			if err != nil {
				return err
			}

			data := plotpage.SiteData{Store: ds.Store, Commits: ds.Commits}

			if region != "" {
				data.Selection, err = parseRegion(region)
				if err != nil {
					return err
				}
			}

			data.Projects, data.ProjectsErr = projects.Load(rt.cfg.Data.Projects)
			if data.ProjectsErr != nil {
				rt.logger.WarnContext(ctx, "project listing unavailable", "path", rt.cfg.Data.Projects, "error", data.ProjectsErr)
			}

			githubUser := ""

			if !noGitHub {
				client, clientErr := rt.githubClient()
				if clientErr != nil {
					return clientErr
				}

				if client != nil {
					githubUser = rt.cfg.GitHub.User

					data.GitHub, data.GitHubErr = fetchProfile(ctx, client, githubUser)
					if data.GitHubErr != nil {
						rt.logger.WarnContext(ctx, "github profile fetch failed", "user", githubUser, "error", data.GitHubErr)
					}
				}
			}

			if output == "" {
				output = rt.cfg.Render.Output
			}

			site := &plotpage.Site{
				OutputDir:  output,
				Theme:      theme,
				Location:   rt.location,
				Latest:     rt.cfg.Render.LatestProjects,
				GitHubUser: githubUser,
			}

			err = site.Render(data)
			if err != nil {
				return err
			}

			rt.logger.InfoContext(ctx, "site written", "dir", output)

			if !g.Quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s, %s and %s\n",
					filepath.Join(output, plotpage.IndexPage),
					filepath.Join(output, plotpage.ProjectsPage),
					filepath.Join(output, plotpage.MetaPage))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default render.output)")
	cmd.Flags().StringVar(&region, "region", "", "preselect a plot-space region x0,y0,x1,y1 on the meta page")
	cmd.Flags().BoolVar(&noGitHub, "no-github", false, "skip fetching GitHub profile stats")

	return cmd
}
