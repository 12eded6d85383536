package view

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/go-vista/vista/pkg/errors"
)

// subviewTree holds a view's named children. Ownership is exclusive: a
// child has exactly one parent, and disposing the parent disposes every
// child. Entries keep insertion order so cascading disposal is
// deterministic.
type subviewTree struct {
	owner *View
	m     *linkedhashmap.Map
}

func (t *subviewTree) table() *linkedhashmap.Map {
	if t.m == nil {
		t.m = linkedhashmap.New()
	}
	return t.m
}

func (t *subviewTree) attach(name string, child *View, strict bool) error {
	if child == nil {
		return &errors.ViewError{
			Op:   "view.Attach",
			Kind: errors.KindSubview,
			View: t.owner.id,
			Err:  fmt.Errorf("nil subview for name %q", name),
		}
	}
	// The parent chain must stay a strict forest.
	for p := t.owner; p != nil; p = p.parent {
		if p == child {
			return &errors.ViewError{
				Op:   "view.Attach",
				Kind: errors.KindSubview,
				View: t.owner.id,
				Err:  fmt.Errorf("attaching %s under %q would create a cycle", child.id, name),
			}
		}
	}

	if existing, ok := t.table().Get(name); ok {
		old := existing.(*View)
		if old == child {
			return nil
		}
		if strict {
			return &errors.DuplicateSubviewError{Name: name}
		}
		// Replace semantics: the displaced occupant is disposed, it does
		// not float away ownerless.
		if err := old.Dispose(); err != nil {
			errors.Report(&errors.ViewError{
				Op:   "view.Attach",
				Kind: errors.KindSubview,
				View: t.owner.id,
				Err:  err,
			})
		}
	}

	// Transfer from a previous parent without disposing the child.
	if child.parent != nil && child.parent != t.owner {
		child.parent.subviews.forget(child)
	}
	t.table().Put(name, child)
	child.parent = t.owner
	return nil
}

func (t *subviewTree) get(name string) (*View, bool) {
	if t.m == nil {
		return nil, false
	}
	val, ok := t.m.Get(name)
	if !ok {
		return nil, false
	}
	return val.(*View), true
}

// detach removes the entry without disposing the child; ownership moves
// back to the caller.
func (t *subviewTree) detach(name string) *View {
	child, ok := t.get(name)
	if !ok {
		return nil
	}
	t.m.Remove(name)
	child.parent = nil
	return child
}

// forget drops the table entry for child, by identity scan, leaving the
// child untouched. Used when a child disposes itself or moves to a new
// parent.
func (t *subviewTree) forget(child *View) {
	if t.m == nil {
		return
	}
	for _, key := range t.m.Keys() {
		if val, ok := t.m.Get(key); ok && val.(*View) == child {
			t.m.Remove(key)
			return
		}
	}
}

func (t *subviewTree) nameOf(child *View) (string, bool) {
	if t.m == nil {
		return "", false
	}
	for _, key := range t.m.Keys() {
		if val, ok := t.m.Get(key); ok && val.(*View) == child {
			return key.(string), true
		}
	}
	return "", false
}

// disposeAll disposes every child in insertion order, collecting errors
// so one failing child never shields its siblings from teardown. Panics
// in a child's teardown are captured the same way.
func (t *subviewTree) disposeAll() []error {
	if t.m == nil {
		return nil
	}
	children := make([]*View, 0, t.m.Size())
	for _, val := range t.m.Values() {
		children = append(children, val.(*View))
	}
	t.m.Clear()

	var errs []error
	for _, child := range children {
		child.parent = nil
		if err := safeDispose(child); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func safeDispose(child *View) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errors.PanicError{
				Op:         "view.Dispose",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			}
		}
	}()
	return child.Dispose()
}

func (t *subviewTree) names() []string {
	if t.m == nil {
		return nil
	}
	keys := t.m.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	return out
}

func (t *subviewTree) size() int {
	if t.m == nil {
		return 0
	}
	return t.m.Size()
}

// Attach stores child under name and takes ownership of it. If the name
// is occupied, the previous occupant is disposed first (replace
// semantics); use AttachStrict or Options.StrictSubviews to make that an
// error instead.
func (v *View) Attach(name string, child *View) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Attach"}
	}
	return v.subviews.attach(name, child, v.opts.StrictSubviews)
}

// AttachStrict is Attach with non-replacing semantics: it returns a
// DuplicateSubviewError when name is occupied by a different view.
func (v *View) AttachStrict(name string, child *View) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "AttachStrict"}
	}
	return v.subviews.attach(name, child, true)
}

// Subview returns the child stored under name.
func (v *View) Subview(name string) (*View, bool) {
	return v.subviews.get(name)
}

// DetachSubview removes the child under name without disposing it and
// returns it; ownership transfers back to the caller. Returns nil when
// the name is vacant.
func (v *View) DetachSubview(name string) *View {
	return v.subviews.detach(name)
}

// DetachSubviewByIdentity removes child from the table by identity scan
// without disposing it. Reports whether it was present.
func (v *View) DetachSubviewByIdentity(child *View) bool {
	name, ok := v.subviews.nameOf(child)
	if !ok {
		return false
	}
	v.subviews.detach(name)
	return true
}

// RemoveSubview detaches the child under name and disposes it.
func (v *View) RemoveSubview(name string) error {
	child := v.subviews.detach(name)
	if child == nil {
		return nil
	}
	return child.Dispose()
}

// SubviewNames returns the current names in insertion order.
func (v *View) SubviewNames() []string {
	return v.subviews.names()
}

// SubviewCount returns the number of attached children.
func (v *View) SubviewCount() int {
	return v.subviews.size()
}
