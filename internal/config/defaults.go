package config

import "time"

// Data defaults.
const (
	DefaultDataLoc      = "loc.csv"
	DefaultDataProjects = "lib/projects.json"
)

// Repository defaults.
const (
	DefaultRepoURL  = "https://github.com/mkalsi13/portfolio"
	DefaultRepoPath = "."
)

// Extraction defaults.
const (
	DefaultExtractIndentWidth = 2
	DefaultExtractLanguages   = false
	DefaultExtractCacheDir    = ".codefolio-cache"
)

// Render defaults.
const (
	DefaultRenderTheme          = "dark"
	DefaultRenderOutput         = "site"
	DefaultRenderLatestProjects = 3
	DefaultRenderTimezone       = ""
)

// Server defaults.
const (
	DefaultServerAddr  = ":8080"
	DefaultServerWatch = true
)

// GitHub defaults.
const (
	DefaultGitHubUser = "mkalsi13"
	DefaultGitHubRate = 5.0

	DefaultGitHubCacheTTL = 10 * time.Minute
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false
)

// OpenTelemetry defaults.
const (
	DefaultOTelInsecure    = false
	DefaultOTelSampleRatio = 1.0
)
