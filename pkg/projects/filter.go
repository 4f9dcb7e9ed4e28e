package projects

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// FailureMessage is shown in place of the listing when it cannot be loaded.
const FailureMessage = "Failed to load projects."

// Load reads and validates the listing at path.
func Load(path string) ([]Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open projects: %w", err)
	}
	defer f.Close()

	list, decodeErr := Decode(f)
	if decodeErr != nil {
		return nil, fmt.Errorf("%s: %w", path, decodeErr)
	}

	return list, nil
}

func normalize(s string) string {
	return strings.ToLower(s)
}

// MatchesQuery reports whether any field of p contains query, ignoring case.
// An empty query matches every project.
func MatchesQuery(p Project, query string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(normalize(p.Haystack()), normalize(query))
}

// MatchesYear reports whether p belongs to year. An empty year matches every
// project.
func MatchesYear(p Project, year string) bool {
	if year == "" {
		return true
	}

	return p.Year == year
}

// Filter is the search state of the project listing.
type Filter struct {
	Query string `json:"query" yaml:"query"`
	Year  string `json:"year" yaml:"year"`
}

// Apply returns the projects matching both the query and the year.
func (f Filter) Apply(list []Project) []Project {
	var out []Project

	for _, p := range list {
		if MatchesQuery(p, f.Query) && MatchesYear(p, f.Year) {
			out = append(out, p)
		}
	}

	return out
}

// ByQuery returns the projects matching query.
func ByQuery(list []Project, query string) []Project {
	return Filter{Query: query}.Apply(list)
}

// ByYear returns the projects from year.
func ByYear(list []Project, year string) []Project {
	return Filter{Year: year}.Apply(list)
}

// ToggleYear selects label, or clears the year when label is already selected.
func (f Filter) ToggleYear(label string) Filter {
	if f.Year == label {
		f.Year = ""
	} else {
		f.Year = label
	}

	return f
}

// YearCount is the number of projects in one year.
type YearCount struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// PerYear counts projects per year, sorted by label.
func PerYear(list []Project) []YearCount {
	counts := make(map[string]int)
	for _, p := range list {
		counts[p.Year]++
	}

	out := make([]YearCount, 0, len(counts))
	for label, value := range counts {
		out = append(out, YearCount{Label: label, Value: value})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out
}

// Latest returns the first n projects of the listing.
func Latest(list []Project, n int) []Project {
	if n < 0 {
		n = 0
	}

	return list[:min(n, len(list))]
}
