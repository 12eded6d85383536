package view

import (
	stderrors "errors"
	"fmt"

	"github.com/go-vista/vista/pkg/errors"
	"github.com/go-vista/vista/pkg/events"
)

var (
	errNoModel      = stderrors.New("view has no model")
	errNoCollection = stderrors.New("view has no collection")
)

// Pass establishes a one-way binding from a model attribute to the
// elements matching selector under the view's root: whenever the
// attribute changes, form controls among the matches get the value as
// their input value, everything else as text content. There is no
// reverse path. The binding is released with the view's other bindings
// on disposal.
func (v *View) Pass(attr, selector string) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Pass"}
	}
	if v.model == nil {
		return &errors.ViewError{
			Op:   "view.Pass",
			Kind: errors.KindBinding,
			View: v.id,
			Err:  errNoModel,
		}
	}
	// Each Pass call is its own registration, never deduplicated against
	// an earlier Pass, so it carries a private identity token.
	token := &struct{ attr, selector string }{attr, selector}
	fn := func(data any) {
		v.applyPass(selector, data)
	}
	return v.bindings.bindTagged(v.model, events.ChangeEvent(attr), fn, token)
}

func (v *View) applyPass(selector string, data any) {
	root := v.root
	if root == nil {
		return
	}
	text := ""
	if data != nil {
		if s, ok := data.(string); ok {
			text = s
		} else {
			text = fmt.Sprint(data)
		}
	}
	for _, target := range root.FindAll(selector) {
		if target.IsFormControl() {
			target.SetValue(text)
		} else {
			target.SetText(text)
		}
	}
}
