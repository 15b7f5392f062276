package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders pages from the embedded templates. html/template's
// contextual escaping guarantees user-supplied text (titles, descriptions,
// prompts, profile fields) renders as inert text, never as markup.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse page templates")
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the projected page. Rendering performs no writes to any
// store; it is safe to repeat for the same page value.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return errors.Wrap(r.tmpl.ExecuteTemplate(w, "page.html", page), "render page")
}
