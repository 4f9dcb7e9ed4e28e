package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// Selection flag errors.
var (
	ErrRegionAndWindow = errors.New("use either --region or --from/--to")
	ErrMissingWindow   = errors.New("--from and --to must be given together")
	ErrBadRegion       = errors.New("--region wants x0,y0,x1,y1")
	ErrBadTime         = scale.ErrBadTime
	ErrBadHours        = scale.ErrBadHours
)

// NewStatsCommand prints the dataset summary figures.
func NewStatsCommand(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show commit info statistics",
		Long:  "Show total lines, commits, files, directory depth and average file length of the dataset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			ds, err := rt.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			rep, err := g.reporter(cmd, rt)
			if err != nil {
				return err
			}

			return rep.Stats(ds.Stats)
		},
	}
}

// NewCommitsCommand lists the commit summaries.
func NewCommitsCommand(g *Globals) *cobra.Command {
	var largestFirst bool

	cmd := &cobra.Command{
		Use:   "commits",
		Short: "List commit summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			ds, err := rt.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			rep, err := g.reporter(cmd, rt)
			if err != nil {
				return err
			}

			summaries := ds.Commits.Summaries()
			if largestFirst {
				summaries = commits.SortBySize(summaries)
			}

			return rep.Commits(summaries)
		},
	}

	cmd.Flags().BoolVar(&largestFirst, "by-size", false, "order by line count, largest first")

	return cmd
}

// selectFlags holds the two ways of naming a selection.
type selectFlags struct {
	from    string
	to      string
	hourMin float64
	hourMax float64
	region  string
}

// NewSelectCommand prints the count label and line-type breakdown of a selection.
func NewSelectCommand(g *Globals) *cobra.Command {
	flags := &selectFlags{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select commits and show the line-type breakdown",
		Long: `Select commits either by a time window and hour-of-day band (--from, --to,
--hour-min, --hour-max) or by a region in plot coordinates (--region x0,y0,x1,y1).
Without either, nothing is selected and the breakdown covers every commit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer rt.close()

			ds, err := rt.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			region, err := flags.resolve(ds.Plot)
			if err != nil {
				return err
			}

			rep, err := g.reporter(cmd, rt)
			if err != nil {
				return err
			}

			return rep.Selection(ds.Select(region))
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "window start (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "window end (RFC 3339, or YYYY-MM-DD for the whole day)")
	cmd.Flags().Float64Var(&flags.hourMin, "hour-min", 0, "lowest hour of day")
	cmd.Flags().Float64Var(&flags.hourMax, "hour-max", scale.HoursPerDay, "highest hour of day")
	cmd.Flags().StringVar(&flags.region, "region", "", "plot-space region x0,y0,x1,y1")

	return cmd
}

func (f *selectFlags) resolve(plot scale.Plot) (*selection.Region, error) {
	hasWindow := f.from != "" || f.to != ""

	switch {
	case hasWindow && f.region != "":
		return nil, ErrRegionAndWindow
	case f.region != "":
		return parseRegion(f.region)
	case !hasWindow:
		return nil, nil
	case f.from == "" || f.to == "":
		return nil, ErrMissingWindow
	}

	from, err := scale.ParseBound(f.from, false)
	if err != nil {
		return nil, err
	}

	to, err := scale.ParseBound(f.to, true)
	if err != nil {
		return nil, err
	}

	return plot.WindowRegion(from, to, f.hourMin, &f.hourMax)
}

func parseRegion(s string) (*selection.Region, error) {
	const corners = 4

	parts := strings.Split(s, ",")
	if len(parts) != corners {
		return nil, fmt.Errorf("%w: %q", ErrBadRegion, s)
	}

	var xy [corners]float64

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadRegion, s)
		}

		xy[i] = v
	}

	return selection.NewRegion(xy[0], xy[1], xy[2], xy[3]), nil
}
