// Package report prints datasets, selections and project listings to a
// terminal as tables, or as JSON and YAML documents.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates an output format name. An empty name selects tables.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Reporter writes reports in one format.
type Reporter struct {
	out      io.Writer
	format   string
	noColor  bool
	location *time.Location
	now      func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithNoColor disables ANSI colors in table output.
func WithNoColor(noColor bool) Option {
	return func(r *Reporter) { r.noColor = noColor }
}

// WithLocation renders commit times in loc instead of their own offset.
func WithLocation(loc *time.Location) Option {
	return func(r *Reporter) { r.location = loc }
}

// WithClock fixes the reference time used for relative ages.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// New creates a reporter writing format to out.
func New(out io.Writer, format string, options ...Option) (*Reporter, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	r := &Reporter{out: out, format: f, now: time.Now}
	for _, opt := range options {
		opt(r)
	}

	return r, nil
}

// Format returns the reporter's output format.
func (r *Reporter) Format() string {
	return r.format
}

// Structured reports whether output is a JSON or YAML document.
func (r *Reporter) Structured() bool {
	return r.format != FormatTable
}

// encode writes v as a JSON or YAML document.
func (r *Reporter) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		defer enc.Close()

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}

	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func (r *Reporter) render(title string, tbl table.Writer) error {
	if title != "" {
		tbl.SetTitle(title)
	}

	_, err := fmt.Fprintln(r.out, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

func (r *Reporter) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.noColor {
		c.DisableColor()
	}

	return c
}
