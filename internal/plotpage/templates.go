package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

var funcMap = template.FuncMap{
	"odd": func(i int) bool {
		return i%2 == 1
	},
}

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // templates escape their input.
}

// mustRenderTemplate renders an embedded template, panicking on error.
func mustRenderTemplate(name string, data any) template.HTML {
	html, err := renderTemplate(name, data)
	if err != nil {
		panic("plotpage: template error: " + err.Error())
	}

	return html
}

type pageData struct {
	Title     string
	SiteName  string
	DarkClass string
	Theme     ThemeConfig
	Header    template.HTML
	Content   template.HTML
	Scripts   template.HTML
}

type headerData struct {
	SiteName    string
	Title       string
	Description string
	Nav         []NavLink
	Current     string
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []template.HTML
}

type cardData struct {
	Title    string
	Subtitle string
	Image    string
	Link     string
	Content  template.HTML
}

type gridData struct {
	ColClass string
	Items    []template.HTML
}

type statData struct {
	Label string
	Value string
}

type alertData struct {
	Title       string
	Message     string
	BgClass     string
	BorderClass string
	TextClass   string
}

type tableData struct {
	Headers []string
	Rows    [][]template.HTML
	Striped bool
}

type badgeData struct {
	Text    string
	Classes string
}
