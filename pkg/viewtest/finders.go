package viewtest

import "github.com/go-vista/vista/pkg/dom"

// Find returns the first element under Body matching selector, or nil.
func (tt *Tester) Find(selector string) *dom.Element {
	return tt.Body.Find(selector)
}

// FindAll returns every element under Body matching selector.
func (tt *Tester) FindAll(selector string) []*dom.Element {
	return tt.Body.FindAll(selector)
}

// MustFind is Find that fails the test when nothing matches.
func (tt *Tester) MustFind(selector string) *dom.Element {
	tt.t.Helper()
	el := tt.Body.Find(selector)
	if el == nil {
		tt.t.Fatalf("viewtest: no element matches %q", selector)
	}
	return el
}

// TextOf returns the text content of the first match, or "" when
// nothing matches.
func (tt *Tester) TextOf(selector string) string {
	el := tt.Body.Find(selector)
	if el == nil {
		return ""
	}
	return el.Text()
}
