package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
)

// Tool name constants.
const (
	ToolNameSelect   = "commits_select"
	ToolNameStats    = "commit_stats"
	ToolNameProjects = "projects_search"
)

// Sentinel errors for tool input validation.
var (
	// ErrNoDataset indicates the server was started without a dataset.
	ErrNoDataset = errors.New("no line dataset loaded")
	// ErrRegionAndWindow indicates both selection forms were given.
	ErrRegionAndWindow = errors.New("give either region or from/to, not both")
	// ErrMissingWindow indicates a window with only one bound.
	ErrMissingWindow = errors.New("from and to must be given together")
	// ErrBadTime indicates an unparsable window bound.
	ErrBadTime = scale.ErrBadTime
	// ErrBadHours indicates an hour band outside [0, 24].
	ErrBadHours = scale.ErrBadHours
)

// Input types (auto-generate JSON schemas via struct tags).

// SelectInput is the input schema for the commits_select tool.
type SelectInput struct {
	From    string      `json:"from,omitempty"     jsonschema:"window start, RFC 3339 or YYYY-MM-DD"`
	To      string      `json:"to,omitempty"       jsonschema:"window end, RFC 3339 or YYYY-MM-DD (a bare date covers the whole day)"`
	HourMin float64     `json:"hour_min,omitempty" jsonschema:"lowest hour of day (default 0)"`
	HourMax *float64    `json:"hour_max,omitempty" jsonschema:"highest hour of day (default 24)"`
	Region  [][]float64 `json:"region,omitempty"   jsonschema:"region [[x0,y0],[x1,y1]] in plot coordinates"`
}

// StatsInput is the input schema for the commit_stats tool.
type StatsInput struct{}

// ProjectsInput is the input schema for the projects_search tool.
type ProjectsInput struct {
	Query  string `json:"query,omitempty"  jsonschema:"case-insensitive text matched against every field"`
	Year   string `json:"year,omitempty"   jsonschema:"only projects from this year"`
	Latest int    `json:"latest,omitempty" jsonschema:"keep only the first n matches"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
