package html

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"mixtape.GO/core/price"
)

//go:embed templates/*.html
var templateFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// TemplateFuncs returns helpers available to every page.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": price.Format,
	}
}

// NewTemplate parses the embedded page templates.
func NewTemplate() (*Template, error) {
	t, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Template{Templates: t}, nil
}
