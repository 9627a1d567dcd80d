package server

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

const indexTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer adapts html/template to echo.Renderer
type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	funcs := template.FuncMap{
		"short": func(id string) string {
			id = strings.TrimPrefix(id, "sha256:")
			if len(id) > 12 {
				return id[:12]
			}
			return id
		},
	}
	return &templateRenderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Render implements echo.Renderer
func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
