package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/auth"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/render"
	webembed "github.com/alfazaa/intake/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map. Times are shown in loc.
func FuncMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.In(loc).Format(render.DisplayLayout)
		},
		"partNumber": model.PartNumber,
		"inc":        func(i int) int { return i + 1 },
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates(loc *time.Location) (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"unlock.html",
		"party.html",
		"damage.html",
		"review.html",
		"record.html",
		"history.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap(loc))
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Company string
	Device  *auth.Claims
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	*api.Deps
	Templates *Templates
}

func (s *Server) page(r *http.Request, title string) PageData {
	company := s.Render.Company
	if company == "" {
		company = render.DefaultCompany
	}
	return PageData{Title: title, Company: company, Device: api.GetClaims(r.Context())}
}

// fail writes err as a plain-text error page with the API's status mapping.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := api.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("page request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, msg, status)
}
