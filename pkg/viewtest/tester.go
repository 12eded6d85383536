// Package viewtest provides isolated view testing: each tester owns a
// private mediator and an in-memory document, so tests never share bus
// state or DOM roots with each other.
package viewtest

import (
	"testing"

	"github.com/go-vista/vista/pkg/dom"
	"github.com/go-vista/vista/pkg/mediator"
	"github.com/go-vista/vista/pkg/view"
)

// Tester drives views against a private document and mediator.
type Tester struct {
	t *testing.T

	// Mediator is the tester's isolated pub/sub broker. Views created
	// through the tester route through it.
	Mediator *mediator.Mediator
	// Body is the document root views attach to by default.
	Body *dom.Element

	views []*view.View
}

// New creates a tester that disposes every view it created when the
// test ends.
func New(t *testing.T) *Tester {
	tt := &Tester{
		t:        t,
		Mediator: mediator.New(),
		Body:     dom.NewElement("body"),
	}
	t.Cleanup(tt.Cleanup)
	return tt
}

// Cleanup disposes all views created through the tester. Registered
// automatically by New.
func (tt *Tester) Cleanup() {
	for i := len(tt.views) - 1; i >= 0; i-- {
		_ = tt.views[i].Dispose()
	}
	tt.views = nil
}

// NewView constructs and initializes a view wired to the tester's
// mediator and, unless opts names a container, to the tester's Body.
func (tt *Tester) NewView(opts view.Options) *view.View {
	tt.t.Helper()
	if opts.Mediator == nil {
		opts.Mediator = tt.Mediator
	}
	if opts.Container == nil {
		opts.Container = tt.Body
	}
	v, err := view.Create(opts)
	if err != nil {
		tt.t.Fatalf("viewtest: create view: %v", err)
	}
	tt.views = append(tt.views, v)
	return v
}

// MustRender renders v and fails the test on error.
func (tt *Tester) MustRender(v *view.View) {
	tt.t.Helper()
	if err := v.Render(); err != nil {
		tt.t.Fatalf("viewtest: render view %s: %v", v.ID(), err)
	}
}

// Click dispatches a click event on the first element matching selector
// under the tester's Body and fails the test when nothing matches.
func (tt *Tester) Click(selector string) {
	tt.t.Helper()
	target := tt.Body.Find(selector)
	if target == nil {
		tt.t.Fatalf("viewtest: no element matches %q", selector)
	}
	target.Dispatch("click", nil)
}

// Input dispatches an input event with data on the first element
// matching selector under the tester's Body.
func (tt *Tester) Input(selector string, data any) {
	tt.t.Helper()
	target := tt.Body.Find(selector)
	if target == nil {
		tt.t.Fatalf("viewtest: no element matches %q", selector)
	}
	target.Dispatch("input", data)
}
