package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

const maxGridColumns = 4

// Tone selects the color of alerts and badges.
type Tone string

// Tone constants.
const (
	ToneDefault Tone = "default"
	ToneAccent  Tone = "accent"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

func renderInto(c Renderable) (template.HTML, error) {
	if c == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := c.Render(&buf)
	if err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil //nolint:gosec // components escape their input.
}

func writeHTML(w io.Writer, what string, html template.HTML) error {
	_, err := io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}

	return nil
}

// Card renders a bordered container, used for project entries.
type Card struct {
	Title    string
	Subtitle string
	Image    string
	Link     string
	Content  Renderable
}

// NewCard creates a new card.
func NewCard(title, subtitle string) *Card {
	return &Card{Title: title, Subtitle: subtitle}
}

// WithContent sets the card content.
func (c *Card) WithContent(content Renderable) *Card {
	c.Content = content

	return c
}

// Render writes the card HTML.
func (c *Card) Render(w io.Writer) error {
	content, err := renderInto(c.Content)
	if err != nil {
		return fmt.Errorf("rendering card content: %w", err)
	}

	return writeHTML(w, "card", mustRenderTemplate("card.html", cardData{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Image:    c.Image,
		Link:     c.Link,
		Content:  content,
	}))
}

// Text renders escaped plain text.
type Text struct {
	Content string
}

// NewText creates a new text block.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Render writes the text content.
func (t *Text) Render(w io.Writer) error {
	return writeHTML(w, "text", template.HTML(template.HTMLEscapeString(t.Content))) //nolint:gosec // escaped.
}

// Grid renders a responsive grid layout.
type Grid struct {
	Columns int
	Items   []Renderable
}

// NewGrid creates a new grid layout with 1 to 4 columns.
func NewGrid(columns int, items ...Renderable) *Grid {
	columns = max(1, min(columns, maxGridColumns))

	return &Grid{Columns: columns, Items: items}
}

// Render writes the grid HTML.
func (g *Grid) Render(w io.Writer) error {
	colClass := map[int]string{
		1: "grid-cols-1",
		2: "grid-cols-1 md:grid-cols-2",
		3: "grid-cols-1 md:grid-cols-2 lg:grid-cols-3",
		4: "grid-cols-2 lg:grid-cols-4",
	}[g.Columns]

	items := make([]template.HTML, len(g.Items))

	for i, item := range g.Items {
		html, err := renderInto(item)
		if err != nil {
			return fmt.Errorf("rendering grid item %d: %w", i, err)
		}

		items[i] = html
	}

	return writeHTML(w, "grid", mustRenderTemplate("grid.html", gridData{ColClass: colClass, Items: items}))
}

// Stat renders a labeled figure.
type Stat struct {
	Label string
	Value string
}

// NewStat creates a new stat display.
func NewStat(label, value string) *Stat {
	return &Stat{Label: label, Value: value}
}

// Render writes the stat HTML.
func (s *Stat) Render(w io.Writer) error {
	return writeHTML(w, "stat", mustRenderTemplate("stat.html", statData{Label: s.Label, Value: s.Value}))
}

// Alert renders a notification box.
type Alert struct {
	Title   string
	Message string
	Tone    Tone
}

// NewAlert creates a new alert.
func NewAlert(title, message string, tone Tone) *Alert {
	return &Alert{Title: title, Message: message, Tone: tone}
}

// Render writes the alert HTML.
func (a *Alert) Render(w io.Writer) error {
	data := alertData{
		Title:       a.Title,
		Message:     a.Message,
		BgClass:     "bg-stone-50 dark:bg-stone-900",
		BorderClass: "border-stone-500",
		TextClass:   "text-stone-700 dark:text-stone-300",
	}

	switch a.Tone {
	case ToneError:
		data.BgClass = "bg-red-50 dark:bg-red-950"
		data.BorderClass = "border-red-500"
		data.TextClass = "text-red-700 dark:text-red-300"
	case ToneInfo:
		data.BgClass = "bg-blue-50 dark:bg-blue-950"
		data.BorderClass = "border-blue-500"
		data.TextClass = "text-blue-700 dark:text-blue-300"
	case ToneAccent:
		data.BorderClass = "border-amber-600"
	case ToneDefault:
	}

	return writeHTML(w, "alert", mustRenderTemplate("alert.html", data))
}

// Table renders an HTML table. Cells are escaped.
type Table struct {
	Headers []string
	Rows    [][]string
	Striped bool
}

// NewTable creates a new striped table.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Striped: true}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)

	return t
}

// Render writes the table HTML.
func (t *Table) Render(w io.Writer) error {
	rows := make([][]template.HTML, len(t.Rows))

	for i, row := range t.Rows {
		rows[i] = make([]template.HTML, len(row))
		for j, cell := range row {
			rows[i][j] = template.HTML(template.HTMLEscapeString(cell)) //nolint:gosec // escaped.
		}
	}

	return writeHTML(w, "table", mustRenderTemplate("table.html", tableData{
		Headers: t.Headers,
		Rows:    rows,
		Striped: t.Striped,
	}))
}

// Badge renders an inline tag.
type Badge struct {
	Text string
	Tone Tone
}

// NewBadge creates a new badge.
func NewBadge(text string, tone Tone) *Badge {
	return &Badge{Text: text, Tone: tone}
}

// Render writes the badge HTML.
func (b *Badge) Render(w io.Writer) error {
	classes := "bg-stone-100 text-stone-800 dark:bg-stone-800 dark:text-stone-200"

	switch b.Tone {
	case ToneAccent:
		classes = "bg-amber-100 text-amber-800 dark:bg-amber-900 dark:text-amber-200"
	case ToneError:
		classes = "bg-red-100 text-red-800 dark:bg-red-900 dark:text-red-200"
	case ToneInfo:
		classes = "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-200"
	case ToneDefault:
	}

	return writeHTML(w, "badge", mustRenderTemplate("badge.html", badgeData{Text: b.Text, Classes: classes}))
}

// Group renders its children one after another.
type Group []Renderable

// Render writes every child in order.
func (g Group) Render(w io.Writer) error {
	for i, item := range g {
		if item == nil {
			continue
		}

		err := item.Render(w)
		if err != nil {
			return fmt.Errorf("rendering group item %d: %w", i, err)
		}
	}

	return nil
}
