// Package template defines the thin template contract views render
// through, plus a default provider backed by html/template. Template
// engine semantics beyond compile-then-render are out of scope.
package template

import (
	"fmt"
	"html/template"
	"strings"
)

// Renderer produces markup from template data. A view obtains one
// Renderer per configured template and calls it once per render.
type Renderer interface {
	Render(data map[string]any) (string, error)
}

// Provider compiles template source into a Renderer.
type Provider interface {
	Compile(source string) (Renderer, error)
}

// HTMLProvider compiles sources with html/template. Output is
// auto-escaped per that package's rules.
type HTMLProvider struct {
	// Funcs, if set, is installed on every compiled template.
	Funcs template.FuncMap
}

// Compile parses source into a Renderer.
func (p *HTMLProvider) Compile(source string) (Renderer, error) {
	t := template.New("view")
	if p.Funcs != nil {
		t = t.Funcs(p.Funcs)
	}
	t, err := t.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("template: compile: %w", err)
	}
	return &htmlRenderer{t: t}, nil
}

type htmlRenderer struct {
	t *template.Template
}

func (r *htmlRenderer) Render(data map[string]any) (string, error) {
	var sb strings.Builder
	if err := r.t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("template: render: %w", err)
	}
	return sb.String(), nil
}

// DataFunc supplies template data. Views resolve their data source in
// order: an explicit DataFunc, the bound model's attributes, the bound
// collection's items.
type DataFunc func() map[string]any

// StaticData returns a DataFunc that always yields data. Handy for views
// without a model.
func StaticData(data map[string]any) DataFunc {
	return func() map[string]any { return data }
}
