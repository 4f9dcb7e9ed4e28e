package plotpage

import (
	"fmt"
	"strings"
)

// Theme represents a color theme for the generated site.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a config value onto a Theme. An empty value selects dark.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(s)) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark, "":
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// ThemeConfig holds the colors used by templates and charts.
type ThemeConfig struct {
	Background  string
	Surface     string
	Border      string
	TextPrimary string
	TextMuted   string
	Accent      string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Commit dots on the scatter plot.
	Point        string
	PointOpacity float32
}

// ChartPalette is the ordered series palette for pies.
type ChartPalette struct {
	Primary []string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeLight {
		return lightChartPalette
	}

	return darkChartPalette
}

// Color returns the i-th palette color, cycling when i exceeds the palette.
func (p ChartPalette) Color(i int) string {
	if len(p.Primary) == 0 {
		return ""
	}

	return p.Primary[i%len(p.Primary)]
}

const pointOpacity = 0.7

var lightTheme = ThemeConfig{
	Background:  "#fafaf9", // stone-50.
	Surface:     "#ffffff",
	Border:      "#e7e5e4", // stone-200.
	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#78716c", // stone-500.
	Accent:      "#a16207", // amber-700.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c",

	Point:        "steelblue",
	PointOpacity: pointOpacity,
}

var darkTheme = ThemeConfig{
	Background:  "#0c0a09", // stone-950.
	Surface:     "#1c1917", // stone-900.
	Border:      "#44403c", // stone-700.
	TextPrimary: "#fafaf9",
	TextMuted:   "#a8a29e",
	Accent:      "#d97706", // amber-600.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e",

	Point:        "steelblue",
	PointOpacity: pointOpacity,
}

var lightChartPalette = ChartPalette{
	Primary: []string{
		"#a16207", // amber-700.
		"#0369a1", // sky-700.
		"#4d7c0f", // lime-700.
		"#7c3aed", // violet-600.
		"#be185d", // pink-700.
		"#0891b2", // cyan-600.
		"#c2410c", // orange-700.
		"#4338ca", // indigo-700.
		"#15803d", // green-700.
		"#b91c1c", // red-700.
	},
}

var darkChartPalette = ChartPalette{
	Primary: []string{
		"#fbbf24", // amber-400.
		"#38bdf8", // sky-400.
		"#a3e635", // lime-400.
		"#a78bfa", // violet-400.
		"#f472b6", // pink-400.
		"#22d3ee", // cyan-400.
		"#fb923c", // orange-400.
		"#818cf8", // indigo-400.
		"#4ade80", // green-400.
		"#f87171", // red-400.
	},
}
