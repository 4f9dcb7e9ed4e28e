package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/internal/report"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

const githubTimeout = 15 * time.Second

// NewProjectsCommand searches the project listing.
func NewProjectsCommand(g *Globals) *cobra.Command {
	var (
		query  string
		year   string
		latest int
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Search the project listing",
		Long: `List projects matching a case-insensitive text query and a year.
Per-year counts follow the text query only, so every year stays listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			list, err := projects.Load(rt.cfg.Data.Projects)
			if err != nil {
				rt.logger.Debug("project listing unavailable", "path", rt.cfg.Data.Projects, "error", err)

				return fmt.Errorf("%s: %w", projects.FailureMessage, err)
			}

			filter := projects.Filter{Query: query, Year: year}

			matched := filter.Apply(list)
			if latest > 0 {
				matched = projects.Latest(matched, latest)
			}

			rep, err := g.reporter(cmd, rt)
			if err != nil {
				return err
			}

			return rep.Projects(report.ProjectListing{
				Filter:   filter,
				Projects: matched,
				PerYear:  projects.PerYear(projects.ByQuery(list, query)),
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "case-insensitive text matched against every field")
	cmd.Flags().StringVar(&year, "year", "", "only projects from this year")
	cmd.Flags().IntVar(&latest, "latest", 0, "keep only the first n matches")

	return cmd
}

// NewGitHubCommand prints the configured user's GitHub profile counters.
func NewGitHubCommand(g *Globals) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Show GitHub profile stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			if user != "" {
				rt.cfg.GitHub.User = user
			}

			client, err := rt.githubClient()
			if err != nil {
				return err
			}

			if client == nil {
				return errNoGitHubUser
			}

			stats, fetchErr := fetchProfile(cmd.Context(), client, rt.cfg.GitHub.User)
			if fetchErr != nil {
				rt.logger.Warn("github profile fetch failed", "user", rt.cfg.GitHub.User, "error", fetchErr)
			}

			rep, err := g.reporter(cmd, rt)
			if err != nil {
				return err
			}

			return rep.GitHub(stats, fetchErr)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "GitHub login (default github.user)")

	return cmd
}

var errNoGitHubUser = errors.New("no GitHub user: set github.user or pass --user")

func fetchProfile(ctx context.Context, client *github.Client, user string) (*github.ProfileStats, error) {
	ctx, cancel := context.WithTimeout(ctx, githubTimeout)
	defer cancel()

	stats, err := client.Profile(ctx, user)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
