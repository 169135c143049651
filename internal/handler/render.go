package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

const (
	baseTemplate  = "base.html"
	errorTemplate = "error.html"
)

// Renderer holds one parsed template set per page. Every set is base.html plus
// the page, so each page can define its own "title" and "content" blocks.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var templateFuncs = template.FuncMap{
	"hasTag": func(selected map[uint]bool, id uint) bool {
		return selected[id]
	},
}

// NewRenderer parses every page under fsys once. Pages are error.html and
// anything matching */*.html (users/index.html, tags/edit.html, ...).
func NewRenderer(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	pages, err := fs.Glob(fsys, "*/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	pages = append(pages, errorTemplate)

	r := &Renderer{
		pages:  make(map[string]*template.Template, len(pages)),
		logger: logger,
	}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(fsys, baseTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes the page into a buffer first, so a template error still
// produces a clean 500 instead of a half-written page.
func (rr *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	tmpl, ok := rr.pages[page]
	if !ok {
		rr.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rr.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rr.logger.Warn("failed to write response", slog.String("error", err.Error()))
	}
}
