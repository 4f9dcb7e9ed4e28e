package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/extract"
	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

// LocCommand holds the flags for the loc command.
type LocCommand struct {
	globals   *Globals
	output    string
	noCache   bool
	languages bool
}

// NewLocCommand creates the dataset extraction command.
func NewLocCommand(g *Globals) *cobra.Command {
	c := &LocCommand{globals: g}

	cmd := &cobra.Command{
		Use:   "loc [repo]",
		Short: "Extract the per-line dataset from a git repository",
		Long: `Walk every file at HEAD of the repository, blame each line and write one
CSV row per line (file, line, type, depth, length, commit, author, date, time,
timezone, datetime). Results are cached by HEAD.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.Run,
	}

	cmd.Flags().StringVarP(&c.output, "output", "o", "", "output CSV (default data.loc)")
	cmd.Flags().BoolVar(&c.noCache, "no-cache", false, "ignore and skip the extraction cache")
	cmd.Flags().BoolVar(&c.languages, "languages", false, "use language names instead of file extensions as line types")

	return cmd
}

// Run executes the loc command.
func (c *LocCommand) Run(cmd *cobra.Command, args []string) error {
	rt, err := c.globals.setup(cmd, observability.ModeCLI)
	if err != nil {
		return err
	}
	defer rt.close()

	repoPath := rt.cfg.Repo.Path
	if len(args) == 1 {
		repoPath = args[0]
	}

	output := c.output
	if output == "" {
		output = rt.cfg.Data.Loc
	}

	opts := extract.Options{
		IndentWidth:  rt.cfg.Extract.IndentWidth,
		Languages:    rt.cfg.Extract.Languages || c.languages,
		SkipPrefixes: rt.cfg.Extract.Skip,
		Logger:       rt.logger,
	}

	if !c.noCache {
		opts.Cache = extract.NewCache(rt.cfg.Extract.CacheDir)
	}

	ctx, span := rt.providers.Tracer.Start(cmd.Context(), "codefolio.loc")
	defer span.End()

	res, err := extract.Extract(ctx, repoPath, opts)
	if err != nil {
		return fmt.Errorf("extract %s: %w", repoPath, err)
	}

	err = loc.Save(output, res.Records)
	if err != nil {
		return err
	}

	rt.logger.InfoContext(ctx, "dataset written",
		"path", output, "lines", len(res.Records), "files", res.Files, "cached", res.Cached)

	if !c.globals.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s lines from %s files at %s to %s\n",
			humanize.Comma(int64(len(res.Records))), humanize.Comma(int64(res.Files)), shortHead(res.Head), output)
	}

	return nil
}

func shortHead(head string) string {
	const short = 7

	if len(head) > short {
		return head[:short]
	}

	return head
}
