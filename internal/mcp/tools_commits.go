package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

// SelectResult is the commits_select payload.
type SelectResult struct {
	Region [][]float64     `json:"region"`
	Views  selection.Views `json:"views"`
}

func (s *Server) handleSelect(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input SelectInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	ds := s.deps.Dataset
	if ds == nil {
		return errorResult(ErrNoDataset)
	}

	region, err := resolveRegion(ds.Plot, input)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(SelectResult{
		Region: region.Corners(),
		Views:  ds.Select(region),
	})
}

// resolveRegion turns either selection form into a plot-space region. An
// empty input clears the selection.
func resolveRegion(plot scale.Plot, input SelectInput) (*selection.Region, error) {
	hasWindow := input.From != "" || input.To != ""

	if !hasWindow {
		region, err := selection.FromCorners(input.Region)
		if err != nil {
			return nil, fmt.Errorf("region: %w", err)
		}

		return region, nil
	}

	if input.Region != nil {
		return nil, ErrRegionAndWindow
	}

	if input.From == "" || input.To == "" {
		return nil, ErrMissingWindow
	}

	from, err := scale.ParseBound(input.From, false)
	if err != nil {
		return nil, err
	}

	to, err := scale.ParseBound(input.To, true)
	if err != nil {
		return nil, err
	}

	return plot.WindowRegion(from, to, input.HourMin, input.HourMax)
}

func (s *Server) handleStats(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ StatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	ds := s.deps.Dataset
	if ds == nil {
		return errorResult(ErrNoDataset)
	}

	return jsonResult(ds.Stats)
}
