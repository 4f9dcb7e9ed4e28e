package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/codefolio/internal/dataset"
	"github.com/Sumatoshi-tech/codefolio/internal/mcp"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

func fixtureDeps() mcp.ServerDeps {
	morning := time.Date(2025, 1, 6, 9, 15, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 8, 21, 45, 0, 0, time.UTC)

	store := loc.NewStore([]loc.Record{
		{Commit: "c1", File: "index.html", Line: 1, Type: "html", Author: "Ann", Datetime: morning},
		{Commit: "c1", File: "index.html", Line: 2, Type: "html", Author: "Ann", Datetime: morning},
		{Commit: "c2", File: "main.js", Line: 1, Type: "js", Author: "Ben", Datetime: evening},
	})

	return mcp.ServerDeps{
		Dataset: dataset.New(context.Background(), store, commits.Options{}, nil),
		Projects: []projects.Project{
			projects.New("title", "Lab 5", "year", "2025", "description", "Data viz with D3"),
			projects.New("title", "Portfolio", "year", "2024", "description", "Personal site"),
		},
	}
}

func connect(t *testing.T, srv *mcp.Server) *mcpsdk.ClientSession {
	t.Helper()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return session
}

func callText(t *testing.T, session *mcpsdk.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return text.Text, result.IsError
}

func TestNewServer_ToolsRegistered(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})

	assert.Equal(t, []string{"commit_stats", "commits_select", "projects_search"}, srv.ListToolNames())
}

func TestServer_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Run(ctx)
	require.Error(t, err)
}

func TestInMemoryTransport_ToolsList(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	toolsResult, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, toolsResult.Tools, 3)

	for _, tool := range toolsResult.Tools {
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
}

func TestInMemoryTransport_Select(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	text, isErr := callText(t, session, mcp.ToolNameSelect, map[string]any{
		"from":     "2025-01-05",
		"to":       "2025-01-09",
		"hour_min": 6,
		"hour_max": 12,
	})
	require.False(t, isErr, text)

	var got mcp.SelectResult
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, "1 commits selected", got.Views.Count.Label)
	require.Len(t, got.Views.Count.Selected, 1)
	assert.Equal(t, "c1", got.Views.Count.Selected[0].ID)
	require.Len(t, got.Views.Breakdown.Entries, 1)
	assert.Equal(t, "html", got.Views.Breakdown.Entries[0].Type)

	text, isErr = callText(t, session, mcp.ToolNameSelect, map[string]any{})
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, "No commits selected", got.Views.Count.Label)
	assert.Equal(t, 3, got.Views.Breakdown.TotalLines)
}

func TestInMemoryTransport_SelectWindowBounds(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	tests := []struct {
		name  string
		input map[string]any
		want  string
	}{
		{"same day", map[string]any{"from": "2025-01-08", "to": "2025-01-08"}, "1 commits selected"},
		{"hour_max omitted", map[string]any{"from": "2025-01-05", "to": "2025-01-09", "hour_min": 9}, "2 commits selected"},
		{"midnight only", map[string]any{"from": "2025-01-05", "to": "2025-01-09", "hour_min": 0, "hour_max": 0}, "No commits selected"},
	}

	for _, tc := range tests {
		text, isErr := callText(t, session, mcp.ToolNameSelect, tc.input)
		require.False(t, isErr, "%s: %s", tc.name, text)

		var got mcp.SelectResult
		require.NoError(t, json.Unmarshal([]byte(text), &got), tc.name)
		assert.Equal(t, tc.want, got.Views.Count.Label, tc.name)
	}

	text, isErr := callText(t, session, mcp.ToolNameSelect, map[string]any{
		"from": "2025-01-05", "to": "2025-01-09", "hour_min": 12, "hour_max": 6,
	})
	assert.True(t, isErr)
	assert.Contains(t, text, mcp.ErrBadHours.Error())
}

func TestInMemoryTransport_SelectErrors(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	text, isErr := callText(t, session, mcp.ToolNameSelect, map[string]any{"from": "2025-01-05"})
	assert.True(t, isErr)
	assert.Contains(t, text, mcp.ErrMissingWindow.Error())

	text, isErr = callText(t, session, mcp.ToolNameSelect, map[string]any{"from": "yesterday", "to": "2025-01-09"})
	assert.True(t, isErr)
	assert.Contains(t, text, "RFC 3339")

	empty := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	text, isErr = callText(t, empty, mcp.ToolNameStats, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, mcp.ErrNoDataset.Error())
}

func TestInMemoryTransport_Stats(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	text, isErr := callText(t, session, mcp.ToolNameStats, map[string]any{})
	require.False(t, isErr, text)

	var stats commits.InfoStats
	require.NoError(t, json.Unmarshal([]byte(text), &stats))
	assert.Equal(t, 3, stats.TotalLOC)
	assert.Equal(t, 2, stats.TotalCommits)
}

func TestInMemoryTransport_Projects(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(fixtureDeps()))

	text, isErr := callText(t, session, mcp.ToolNameProjects, map[string]any{"query": "d3"})
	require.False(t, isErr, text)

	var got mcp.ProjectsResult
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Lab 5", got.Projects[0].Title)

	deps := fixtureDeps()
	deps.ProjectsErr = assert.AnError

	text, isErr = callText(t, connect(t, mcp.NewServer(deps)), mcp.ToolNameProjects, map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, projects.FailureMessage, text)
}

func TestInMemoryTransport_TraceID(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	deps := fixtureDeps()
	deps.Tracer = tp.Tracer("test")

	session := connect(t, mcp.NewServer(deps))

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      mcp.ToolNameStats,
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 2)

	trailer, ok := result.Content[1].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, trailer.Text, "trace_id=")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "mcp.commit_stats", spans[0].Name)
}
