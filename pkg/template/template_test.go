package template

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLProviderCompileAndRender(t *testing.T) {
	p := &HTMLProvider{}
	r, err := p.Compile(`<p>Hello {{.name}}</p>`)
	require.NoError(t, err)

	out, err := r.Render(map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.Equal(t, "<p>Hello Ada</p>", out)
}

func TestHTMLProviderEscapes(t *testing.T) {
	p := &HTMLProvider{}
	r, err := p.Compile(`<p>{{.name}}</p>`)
	require.NoError(t, err)

	out, err := r.Render(map[string]any{"name": "<script>"})
	require.NoError(t, err)
	require.False(t, strings.Contains(out, "<script>"))
}

func TestHTMLProviderCompileError(t *testing.T) {
	p := &HTMLProvider{}
	_, err := p.Compile(`{{range}}`)
	require.Error(t, err)
}

func TestHTMLProviderFuncs(t *testing.T) {
	p := &HTMLProvider{Funcs: template.FuncMap{
		"upper": strings.ToUpper,
	}}
	r, err := p.Compile(`{{upper .name}}`)
	require.NoError(t, err)

	out, err := r.Render(map[string]any{"name": "ada"})
	require.NoError(t, err)
	require.Equal(t, "ADA", out)
}

func TestStaticData(t *testing.T) {
	fn := StaticData(map[string]any{"a": 1})
	require.Equal(t, map[string]any{"a": 1}, fn())
}
