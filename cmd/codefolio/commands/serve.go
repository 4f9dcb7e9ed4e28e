package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/mcp"
	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/internal/server"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

// NewServeCommand starts the HTTP API.
func NewServeCommand(g *Globals) *cobra.Command {
	var (
		addr    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve commits, stats, selections and the project listing over HTTP:

  GET  /api/commits          commit summaries
  GET  /api/commits/{id}     one commit with its tooltip
  GET  /api/stats            commit info statistics
  POST /api/selection        {"region": [[x0,y0],[x1,y1]] | null} or
                             {"domain": {"from", "to", "hourMin", "hourMax"}} -> count + breakdown
  GET  /api/projects?q=&year=
  GET  /api/github
  GET  /healthz, /readyz, /metrics

The dataset is reloaded when data.loc changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeServe)
			if err != nil {
				return err
			}
			defer rt.close()

			red, err := observability.NewREDMetrics(rt.providers.Meter)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = rt.cfg.Server.Addr
			}

			opts := []server.Option{
				server.WithLogger(rt.logger),
				server.WithTracer(rt.providers.Tracer),
				server.WithMetrics(red),
				server.WithMetricsHandler(rt.providers.MetricsHandler),
			}

			client, err := rt.githubClient()
			if err != nil {
				return err
			}

			if client != nil {
				opts = append(opts, server.WithGitHub(client))
			}

			srv := server.New(server.Config{
				Addr:          addr,
				LocPath:       rt.cfg.Data.Loc,
				ProjectsPath:  rt.cfg.Data.Projects,
				CommitOptions: rt.commitOptions(),
				Watch:         rt.cfg.Server.Watch && !noWatch,
				GitHubUser:    rt.cfg.GitHub.User,
			}, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = srv.Load(ctx)
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when the dataset changes")

	return cmd
}

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

Tools:
  - commits_select: select commits by time window or plot region
  - commit_stats: summary figures of the line dataset
  - projects_search: search the project listing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeMCP)
			if err != nil {
				return err
			}
			defer rt.close()

			red, err := observability.NewREDMetrics(rt.providers.Meter)
			if err != nil {
				return err
			}

			ds, err := rt.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			list, projectsErr := projects.Load(rt.cfg.Data.Projects)
			if projectsErr != nil {
				rt.logger.Warn("project listing unavailable", "path", rt.cfg.Data.Projects, "error", projectsErr)
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Dataset:     ds,
				Projects:    list,
				ProjectsErr: projectsErr,
				Logger:      rt.logger,
				Metrics:     red,
				Tracer:      rt.providers.Tracer,
			})

			return srv.Run(cmd.Context())
		},
	}
}
