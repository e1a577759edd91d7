// Package web renders the single-page dashboard.
package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the dashboard page template.
const IndexTemplate = "index.html"

// CountryOption is one entry of the country multi-select.
type CountryOption struct {
	Name     string
	Selected bool
}

// PageData feeds the dashboard template.
type PageData struct {
	Heading     string
	Description string
	Countries   []CountryOption
	MinYear     int
	MaxYear     int
	Start       int
	End         int
	Marks       []int
	ChartURL    template.URL
	Error       string
}

// TemplateRenderer implements echo.Renderer over the embedded templates.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
