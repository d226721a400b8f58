package console

import (
	"embed"
	"html/template"

	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates loads the console pages. html/template escapes every
// interpolated value for its context.
func ParseTemplates() (*template.Template, error) {
	return template.New("console").
		Funcs(template.FuncMap{
			"addressTypes": func() []string { return viewmodels.AddressTypes },
		}).
		ParseFS(templateFS, "templates/*.html")
}
