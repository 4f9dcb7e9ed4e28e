package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".codefolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultDataLoc, cfg.Data.Loc)
	assert.Equal(t, config.DefaultDataProjects, cfg.Data.Projects)
	assert.Equal(t, config.DefaultRepoURL, cfg.Repo.URL)
	assert.Equal(t, config.DefaultExtractIndentWidth, cfg.Extract.IndentWidth)
	assert.Equal(t, config.DefaultExtractCacheDir, cfg.Extract.CacheDir)
	assert.Equal(t, config.DefaultRenderTheme, cfg.Render.Theme)
	assert.Equal(t, config.DefaultRenderLatestProjects, cfg.Render.LatestProjects)
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, config.DefaultGitHubUser, cfg.GitHub.User)
	assert.InDelta(t, config.DefaultGitHubRate, cfg.GitHub.Rate, 1e-9)
	assert.Equal(t, config.DefaultGitHubCacheTTL, cfg.GitHub.CacheTTL)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Empty(t, cfg.OTel.Endpoint)

	assert.Equal(t, cfg, config.Default())
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `data:
  loc: meta/loc.csv
repo:
  url: https://github.com/example/site
extract:
  indent_width: 4
  languages: true
  skip:
    - dist/
render:
  theme: light
  latest_projects: 5
  timezone: America/Los_Angeles
server:
  addr: 127.0.0.1:9000
  watch: false
github:
  user: octocat
  rate: 1.5
log:
  level: debug
  json: true
`

	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "meta/loc.csv", cfg.Data.Loc)
	assert.Equal(t, config.DefaultDataProjects, cfg.Data.Projects)
	assert.Equal(t, "https://github.com/example/site", cfg.Repo.URL)
	assert.Equal(t, 4, cfg.Extract.IndentWidth)
	assert.True(t, cfg.Extract.Languages)
	assert.Equal(t, []string{"dist/"}, cfg.Extract.Skip)
	assert.Equal(t, config.ThemeLight, cfg.Render.Theme)
	assert.Equal(t, 5, cfg.Render.LatestProjects)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.False(t, cfg.Server.Watch)
	assert.Equal(t, "octocat", cfg.GitHub.User)
	assert.True(t, cfg.Log.JSON)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	location, err := cfg.Render.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", location.String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "theme", content: "render:\n  theme: neon\n", want: config.ErrInvalidTheme},
		{name: "indent", content: "extract:\n  indent_width: 0\n", want: config.ErrInvalidIndentWidth},
		{name: "latest", content: "render:\n  latest_projects: -1\n", want: config.ErrInvalidLatest},
		{name: "rate", content: "github:\n  rate: 0\n", want: config.ErrInvalidRate},
		{name: "cache ttl", content: "github:\n  cache_ttl: -1s\n", want: config.ErrInvalidCacheTTL},
		{name: "level", content: "log:\n  level: loud\n", want: config.ErrInvalidLogLevel},
		{name: "timezone", content: "render:\n  timezone: Mars/Olympus\n", want: config.ErrInvalidTimezone},
		{name: "sample ratio", content: "otel:\n  sample_ratio: 2\n", want: config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "render: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CODEFOLIO_RENDER_THEME", "light")
	t.Setenv("CODEFOLIO_GITHUB_USER", "from-env")

	cfg, err := config.LoadConfig(writeConfig(t, "github:\n  user: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, config.ThemeLight, cfg.Render.Theme)
	assert.Equal(t, "from-env", cfg.GitHub.User)
}

func TestRenderConfig_EmptyTimezone(t *testing.T) {
	t.Parallel()

	location, err := config.RenderConfig{}.Location()
	require.NoError(t, err)
	assert.Nil(t, location)
}
