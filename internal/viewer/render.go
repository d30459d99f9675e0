package viewer

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/form"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS holds the stylesheet served under /static.
func StaticFS() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}

// Renderer renders the page templates. Each page is parsed together with the
// layout and the shared partials.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"isText":        func(f form.FieldState) bool { return f.Kind == form.KindText },
	"isNumber":      func(f form.FieldState) bool { return f.Kind == form.KindNumber },
	"isSelect":      func(f form.FieldState) bool { return f.Kind == form.KindSelect },
	"isMultiSelect": func(f form.FieldState) bool { return f.Kind == form.KindMultiSelect },
}

func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/page_*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		name := path.Base(p)
		name = name[len("page_") : len(name)-len(".html")]
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
