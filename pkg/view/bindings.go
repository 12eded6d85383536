package view

import (
	"unsafe"

	"github.com/go-vista/vista/pkg/errors"
	"github.com/go-vista/vista/pkg/events"
)

// bindingRegistry records every emitter subscription a view holds so
// disposal can release them all. Handlers register under the view's own
// identity (or a private token), never the emitter's, so an emitter can
// never re-enter or retain a disposed view.
type bindingRegistry struct {
	owner   *View
	records []bindingRecord
}

type bindingRecord struct {
	emitter events.Emitter
	event   string
	ownerID any
	fn      events.Handler
	key     uintptr
}

// funcKey identifies a handler func value by its underlying funcval
// pointer. Two closures sharing one body but capturing different
// variables get distinct keys; copies of one func value match.
func funcKey[T any](fn T) uintptr {
	return *(*uintptr)(unsafe.Pointer(&fn))
}

// bind registers fn for event on emitter, replacing any prior identical
// (emitter, event, handler) registration first.
func (r *bindingRegistry) bind(emitter events.Emitter, event string, fn events.Handler) error {
	r.unbind(emitter, event, fn)
	if err := emitter.On(event, r.owner, fn); err != nil {
		return &errors.ViewError{
			Op:   "view.Bind",
			Kind: errors.KindBinding,
			View: r.owner.id,
			Err:  err,
		}
	}
	r.records = append(r.records, bindingRecord{
		emitter: emitter,
		event:   event,
		ownerID: r.owner,
		fn:      fn,
		key:     funcKey(fn),
	})
	return nil
}

// bindTagged registers fn under a caller-supplied identity token instead
// of the view, bypassing handler dedup entirely. Used where each call
// must stay its own registration (e.g. Pass targets).
func (r *bindingRegistry) bindTagged(emitter events.Emitter, event string, fn events.Handler, token any) error {
	if err := emitter.On(event, token, fn); err != nil {
		return &errors.ViewError{
			Op:   "view.Bind",
			Kind: errors.KindBinding,
			View: r.owner.id,
			Err:  err,
		}
	}
	r.records = append(r.records, bindingRecord{
		emitter: emitter,
		event:   event,
		ownerID: token,
		fn:      fn,
		key:     funcKey(fn),
	})
	return nil
}

// unbind removes a registration by (emitter, event, handler). No-op if
// absent or if the emitter is already destroyed.
func (r *bindingRegistry) unbind(emitter events.Emitter, event string, fn events.Handler) {
	key := funcKey(fn)
	for i, rec := range r.records {
		if rec.emitter == emitter && rec.event == event && rec.key == key && rec.ownerID == any(r.owner) {
			emitter.Off(event, rec.ownerID, rec.fn)
			r.records = append(r.records[:i:i], r.records[i+1:]...)
			return
		}
	}
}

// unbindAll removes every recorded registration. Emitters that were
// destroyed in the meantime ignore the unregister silently, so one dead
// emitter never aborts the remaining unbinds.
func (r *bindingRegistry) unbindAll() {
	for _, rec := range r.records {
		rec.emitter.Off(rec.event, rec.ownerID, rec.fn)
	}
	r.records = nil
}

func (r *bindingRegistry) count() int {
	return len(r.records)
}

// Bind subscribes fn to event on emitter and records the registration
// for automatic teardown. Binding the identical (emitter, event, handler)
// triple twice first unbinds the prior registration, so exactly one
// subscription stays active.
func (v *View) Bind(emitter events.Emitter, event string, fn events.Handler) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Bind"}
	}
	return v.bindings.bind(emitter, event, fn)
}

// Unbind removes a prior Bind registration. No-op if absent; always safe
// during and after disposal.
func (v *View) Unbind(emitter events.Emitter, event string, fn events.Handler) {
	v.bindings.unbind(emitter, event, fn)
}

// BindModel binds fn to an event on the view's configured model.
func (v *View) BindModel(event string, fn events.Handler) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "BindModel"}
	}
	if v.model == nil {
		return &errors.ViewError{
			Op:   "view.BindModel",
			Kind: errors.KindBinding,
			View: v.id,
			Err:  errNoModel,
		}
	}
	return v.bindings.bind(v.model, event, fn)
}

// BindCollection binds fn to an event on the view's configured collection.
func (v *View) BindCollection(event string, fn events.Handler) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "BindCollection"}
	}
	if v.collection == nil {
		return &errors.ViewError{
			Op:   "view.BindCollection",
			Kind: errors.KindBinding,
			View: v.id,
			Err:  errNoCollection,
		}
	}
	return v.bindings.bind(v.collection, event, fn)
}

// BindingCount returns the number of active emitter registrations. Zero
// after disposal.
func (v *View) BindingCount() int {
	return v.bindings.count()
}
