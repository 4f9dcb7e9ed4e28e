// Package config loads codefolio settings from defaults, a YAML file and
// CODEFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Sentinel validation errors.
var (
	ErrInvalidTheme       = errors.New("render theme must be light or dark")
	ErrInvalidIndentWidth = errors.New("extract indent width must be positive")
	ErrInvalidLatest      = errors.New("render latest projects must not be negative")
	ErrInvalidRate        = errors.New("github rate must be positive")
	ErrInvalidCacheTTL    = errors.New("github cache ttl must not be negative")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidTimezone    = errors.New("unknown render timezone")
	ErrInvalidSampleRatio = errors.New("otel sample ratio must be within [0, 1]")
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the full codefolio configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Repo    RepoConfig    `mapstructure:"repo"`
	Extract ExtractConfig `mapstructure:"extract"`
	Render  RenderConfig  `mapstructure:"render"`
	Server  ServerConfig  `mapstructure:"server"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Log     LogConfig     `mapstructure:"log"`
	OTel    OTelConfig    `mapstructure:"otel"`
}

// DataConfig locates the input files.
type DataConfig struct {
	Loc      string `mapstructure:"loc"`
	Projects string `mapstructure:"projects"`
}

// RepoConfig describes the analyzed repository.
type RepoConfig struct {
	URL  string `mapstructure:"url"`
	Path string `mapstructure:"path"`
}

// ExtractConfig controls dataset extraction.
type ExtractConfig struct {
	IndentWidth int      `mapstructure:"indent_width"`
	Languages   bool     `mapstructure:"languages"`
	CacheDir    string   `mapstructure:"cache_dir"`
	Skip        []string `mapstructure:"skip"`
}

// RenderConfig controls static page generation.
type RenderConfig struct {
	Theme          string `mapstructure:"theme"`
	Output         string `mapstructure:"output"`
	LatestProjects int    `mapstructure:"latest_projects"`
	// Timezone is an IANA name used for hour-of-day; empty keeps each commit's own offset.
	Timezone string `mapstructure:"timezone"`
}

// Location resolves Timezone. An empty name yields nil.
func (r RenderConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return nil, nil //nolint:nilnil // nil location means "record offset"
	}

	location, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, r.Timezone)
	}

	return location, nil
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Watch bool   `mapstructure:"watch"`
}

// GitHubConfig controls the profile stats client.
type GitHubConfig struct {
	User  string  `mapstructure:"user"`
	Token string  `mapstructure:"token"`
	Rate  float64 `mapstructure:"rate"`
	// CacheTTL is how long a fetched profile is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.ToUpper(l.Level)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}

	return level, nil
}

// OTelConfig controls trace and metric export.
type OTelConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// Validate checks all fields.
func (c *Config) Validate() error {
	if c.Render.Theme != ThemeLight && c.Render.Theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Render.Theme)
	}

	if c.Extract.IndentWidth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndentWidth, c.Extract.IndentWidth)
	}

	if c.Render.LatestProjects < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLatest, c.Render.LatestProjects)
	}

	if c.GitHub.Rate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, c.GitHub.Rate)
	}

	if c.GitHub.CacheTTL < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCacheTTL, c.GitHub.CacheTTL)
	}

	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.OTel.SampleRatio)
	}

	_, levelErr := c.Log.SlogLevel()
	if levelErr != nil {
		return levelErr
	}

	_, tzErr := c.Render.Location()

	return tzErr
}
