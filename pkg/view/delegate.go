package view

import (
	"github.com/go-vista/vista/pkg/dom"
	"github.com/go-vista/vista/pkg/errors"
)

// delegator records (eventType, selector, handler) triples registered
// against the view's root so they can be bulk-removed on disposal.
type delegator struct {
	owner   *View
	records []delegation
}

type delegation struct {
	event    string
	selector string
	fn       func(*dom.Event)
	key      uintptr
	remove   func()
}

func (d *delegator) delegate(event, selector string, fn func(*dom.Event)) {
	d.undelegate(event, selector, fn)
	root := d.owner.root
	wrapped := fn
	if selector != "" {
		// Event delegation: the handler sits on the root but only fires
		// when the event's origin matches the selector inside the root.
		wrapped = func(ev *dom.Event) {
			for cur := ev.Target; cur != nil && cur != root; cur = cur.Parent() {
				if cur.Matches(selector) {
					fn(ev)
					return
				}
			}
		}
	}
	remove := root.AddEventListener(event, wrapped)
	d.records = append(d.records, delegation{
		event:    event,
		selector: selector,
		fn:       fn,
		key:      funcKey(fn),
		remove:   remove,
	})
}

func (d *delegator) undelegate(event, selector string, fn func(*dom.Event)) {
	key := funcKey(fn)
	for i, rec := range d.records {
		if rec.event == event && rec.selector == selector && rec.key == key {
			rec.remove()
			d.records = append(d.records[:i:i], d.records[i+1:]...)
			return
		}
	}
}

func (d *delegator) undelegateAll() {
	for _, rec := range d.records {
		rec.remove()
	}
	d.records = nil
}

func (d *delegator) count() int {
	return len(d.records)
}

// Delegate registers fn against the view's root for events of the given
// type. A non-empty selector scopes it to events originating on a
// matching descendant. Registering an identical (event, selector,
// handler) triple twice replaces the prior registration.
func (v *View) Delegate(event, selector string, fn func(*dom.Event)) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Delegate"}
	}
	if fn == nil {
		return nil
	}
	v.delegator.delegate(event, selector, fn)
	return nil
}

// Undelegate removes a prior Delegate registration. No-op if absent;
// always safe during and after disposal.
func (v *View) Undelegate(event, selector string, fn func(*dom.Event)) {
	v.delegator.undelegate(event, selector, fn)
}

// DelegationCount returns the number of active delegated handlers. Zero
// after disposal.
func (v *View) DelegationCount() int {
	return v.delegator.count()
}
