package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

// ProjectsResult is the projects_search payload.
type ProjectsResult struct {
	Filter   projects.Filter      `json:"filter"`
	Total    int                  `json:"total"`
	Projects []projects.Project   `json:"projects"`
	PerYear  []projects.YearCount `json:"perYear"`
}

func (s *Server) handleProjects(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ProjectsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if s.deps.ProjectsErr != nil {
		return errorResult(errors.New(projects.FailureMessage))
	}

	filter := projects.Filter{Query: input.Query, Year: input.Year}
	matched := filter.Apply(s.deps.Projects)

	if input.Latest > 0 {
		matched = projects.Latest(matched, input.Latest)
	}

	return jsonResult(ProjectsResult{
		Filter:   filter,
		Total:    len(matched),
		Projects: matched,
		PerYear:  projects.PerYear(projects.ByQuery(s.deps.Projects, filter.Query)),
	})
}
