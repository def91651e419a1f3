package server

import (
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
)

// Templates loads HTML templates from a root directory and caches them
// by name. The template called "index" is parsed from
// <root>/index.html.
type Templates struct {
	root string

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewTemplates creates an empty template cache rooted at dir.
func NewTemplates(dir string) *Templates {
	return &Templates{
		root:      dir,
		templates: make(map[string]*template.Template),
	}
}

// Load parses and caches the named templates, replacing any previously
// loaded version.
func (t *Templates) Load(names ...string) error {
	for _, name := range names {
		tpl, err := template.ParseFiles(filepath.Join(t.root, name+".html"))
		if err != nil {
			return fmt.Errorf("load template %q: %w", name, err)
		}
		t.mu.Lock()
		t.templates[name] = tpl
		t.mu.Unlock()
	}
	return nil
}

// Get returns a loaded template, or nil.
func (t *Templates) Get(name string) *template.Template {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.templates[name]
}

// Render executes a loaded template into the response.
func (t *Templates) Render(w *Response, status int, name string, data any) error {
	tpl := t.Get(name)
	if tpl == nil {
		return fmt.Errorf("unknown template %q", name)
	}
	return w.HTML(status, tpl, data)
}

// HTML executes the template with the given data and sends the result
// with the given status.
func (r *Response) HTML(status int, tpl *template.Template, data any) error {
	r.Header().Set("Content-Type", "text/html; charset=utf-8")
	r.WriteHeader(status)
	return tpl.Execute(r, data)
}
