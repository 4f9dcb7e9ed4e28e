// Package commands implements the codefolio CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/config"
	"github.com/Sumatoshi-tech/codefolio/internal/dataset"
	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/internal/report"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/version"
)

// Globals holds the persistent root flags.
type Globals struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	Format     string
	NoColor    bool
}

// NewRootCommand builds the codefolio command tree.
func NewRootCommand() *cobra.Command {
	globals := &Globals{}

	rootCmd := &cobra.Command{
		Use:   "codefolio",
		Short: "Portfolio commit analytics",
		Long: `Codefolio turns the line history of a portfolio repository into commit
statistics, a brushable commit scatter and a static portfolio site.

Commands:
  loc       Extract the per-line dataset from a git repository
  stats     Summary figures of the dataset
  commits   List commit summaries
  select    Select commits by time window or plot region
  projects  Search the project listing
  render    Write the static site
  serve     Serve the HTTP API
  mcp       Start the MCP stdio server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.ConfigPath, "config", "", "config file (default .codefolio.yaml in . or $HOME)")
	flags.BoolVarP(&globals.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&globals.Quiet, "quiet", "q", false, "suppress output")
	flags.StringVar(&globals.Format, "format", report.FormatTable, "output format: table, json or yaml")
	flags.BoolVar(&globals.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewLocCommand(globals),
		NewStatsCommand(globals),
		NewCommitsCommand(globals),
		NewSelectCommand(globals),
		NewProjectsCommand(globals),
		NewGitHubCommand(globals),
		NewRenderCommand(globals),
		NewServeCommand(globals),
		NewMCPCommand(globals),
		NewVersionCommand(),
	)

	return rootCmd
}

// cliEnv is what a command needs once flags are parsed.
type cliEnv struct {
	cfg       *config.Config
	providers observability.Providers
	logger    *slog.Logger
	location  *time.Location
}

// setup loads the configuration and starts observability for mode.
func (g *Globals) setup(cmd *cobra.Command, mode observability.AppMode) (*cliEnv, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Render.Location()
	if err != nil {
		return nil, err
	}

	obsCfg, err := g.observabilityConfig(cfg, mode)
	if err != nil {
		return nil, err
	}

	providers, err := observability.InitWithWriter(obsCfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	return &cliEnv{cfg: cfg, providers: providers, logger: providers.Logger, location: location}, nil
}

func (g *Globals) observabilityConfig(cfg *config.Config, mode observability.AppMode) (observability.Config, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Log.JSON
	obsCfg.SampleRatio = cfg.OTel.SampleRatio
	obsCfg.OTLPEndpoint = cfg.OTel.Endpoint
	obsCfg.OTLPInsecure = cfg.OTel.Insecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.Prometheus = mode == observability.ModeServe

	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		obsCfg.OTLPInsecure = obsCfg.OTLPInsecure || os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	}

	switch {
	case g.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.DebugTrace = true
	case g.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	return obsCfg, nil
}

// close flushes telemetry.
func (rt *cliEnv) close() {
	shutdownErr := rt.providers.Shutdown(context.Background())
	if shutdownErr != nil {
		rt.logger.Warn("observability shutdown failed", "error", shutdownErr)
	}
}

func (rt *cliEnv) commitOptions() commits.Options {
	return commits.Options{RepoURL: rt.cfg.Repo.URL, Location: rt.location}
}

func (rt *cliEnv) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	return dataset.Load(ctx, rt.cfg.Data.Loc, rt.commitOptions(), rt.logger)
}

// githubClient returns nil when no user is configured.
func (rt *cliEnv) githubClient() (*github.Client, error) {
	if rt.cfg.GitHub.User == "" {
		return nil, nil //nolint:nilnil // nil client disables GitHub stats
	}

	var opts []github.Option
	if rt.cfg.GitHub.CacheTTL > 0 {
		opts = append(opts, github.WithCache(rt.cfg.GitHub.CacheTTL))
	}

	return github.NewClient(rt.cfg.GitHub.Token, rt.cfg.GitHub.Rate, opts...)
}

func (g *Globals) reporter(cmd *cobra.Command, rt *cliEnv) (*report.Reporter, error) {
	return report.New(cmd.OutOrStdout(), g.Format,
		report.WithNoColor(g.NoColor),
		report.WithLocation(rt.location),
	)
}

// NewVersionCommand prints build metadata.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
