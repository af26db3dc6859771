package html

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"shopzone.GO/core/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded page templates.
func NewTemplate() (*Template, error) {
	tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Template{Templates: tmpl}, nil
}

// TemplateFuncs returns the FuncMap shared by the storefront pages.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"t": func(lang i18n.Language, key string) string {
			return i18n.T(lang, i18n.Key(key))
		},
		"category": i18n.Category,
		"money": func(v float64) string {
			return "$" + formatMoney(v)
		},
		"bg": func(color *string) template.CSS {
			if color == nil || *color == "" {
				return ""
			}
			return template.CSS("background:" + *color)
		},
	}
}
