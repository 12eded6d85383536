// Package events implements the emitter protocol consumed by views:
// named events with owner-scoped handlers and a well-known destroy event
// that fires before an emitter becomes unusable.
package events

import (
	"sync"
	"unsafe"

	"github.com/go-vista/vista/pkg/errors"
)

// EventDestroy is the well-known event an emitter fires exactly once,
// immediately before it becomes unusable. Views subscribe to it so that
// destroying a model cascades into disposing the views bound to it.
const EventDestroy = "destroy"

// Handler receives the payload of an emitted event.
type Handler func(data any)

// Emitter is the protocol any observable object (model, collection, bus)
// must satisfy. Handlers are registered together with an owner identity so
// they can be bulk-removed when the owner is torn down; the emitter never
// holds an owning reference to the owner.
type Emitter interface {
	// On registers fn for event under owner. Registering the same
	// (owner, event, fn) tuple twice replaces the prior registration.
	// Returns errors.ErrEmitterDestroyed after Destroy.
	On(event string, owner any, fn Handler) error
	// Off removes a prior registration. No-op if absent or destroyed.
	Off(event string, owner any, fn Handler)
	// OffOwner removes every registration held for owner.
	OffOwner(owner any)
	// Emit invokes all handlers registered for event with data.
	Emit(event string, data any)
	// Destroy fires EventDestroy, then drops all registrations and marks
	// the emitter unusable. Safe to call twice.
	Destroy()
	// Destroyed reports whether Destroy has completed.
	Destroyed() bool
	// ListenerCount returns the number of active registrations for event.
	ListenerCount(event string) int
}

// handlerKey identifies a handler func for equality. Go funcs are not
// comparable, so registrations are matched by the func value's
// underlying funcval pointer plus owner. Unlike a code pointer, the
// funcval pointer separates two closures that share one body but
// capture different variables; copies of one func value still match.
func handlerKey(fn Handler) uintptr {
	return *(*uintptr)(unsafe.Pointer(&fn))
}

type registration struct {
	owner any
	fn    Handler
	key   uintptr
}

// EventEmitter is the canonical Emitter implementation. The zero value is
// ready to use; embed it to make any object observable:
//
//	type Job struct {
//	    events.EventEmitter
//	    Name string
//	}
//
//	job.Emit("progress", 0.5)
type EventEmitter struct {
	mu         sync.Mutex
	handlers   map[string][]registration
	destroying bool
	destroyed  bool
}

// NewEmitter returns a standalone emitter.
func NewEmitter() *EventEmitter {
	return &EventEmitter{}
}

// On registers fn for event under owner.
func (e *EventEmitter) On(event string, owner any, fn Handler) error {
	if fn == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.destroying {
		return errors.ErrEmitterDestroyed
	}
	if e.handlers == nil {
		e.handlers = make(map[string][]registration)
	}
	reg := registration{owner: owner, fn: fn, key: handlerKey(fn)}
	regs := e.handlers[event]
	for i, r := range regs {
		if r.owner == owner && r.key == reg.key {
			regs[i] = reg
			return nil
		}
	}
	e.handlers[event] = append(regs, reg)
	return nil
}

// Off removes a prior registration. Calling Off on a destroyed emitter or
// with a handler that was never registered is a no-op.
func (e *EventEmitter) Off(event string, owner any, fn Handler) {
	if fn == nil {
		return
	}
	key := handlerKey(fn)
	e.mu.Lock()
	defer e.mu.Unlock()
	regs := e.handlers[event]
	for i, r := range regs {
		if r.owner == owner && r.key == key {
			e.handlers[event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// OffOwner removes every registration held for owner.
func (e *EventEmitter) OffOwner(owner any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for event, regs := range e.handlers {
		kept := regs[:0]
		for _, r := range regs {
			if r.owner != owner {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(e.handlers, event)
		} else {
			e.handlers[event] = kept
		}
	}
}

// Emit invokes all handlers registered for event. Handlers run outside the
// emitter's lock, so they may register and remove handlers (including
// themselves) while the emission is in flight; such changes do not affect
// the current emission.
func (e *EventEmitter) Emit(event string, data any) {
	for _, r := range e.snapshot(event) {
		r.fn(data)
	}
}

func (e *EventEmitter) snapshot(event string) []registration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return nil
	}
	regs := e.handlers[event]
	if len(regs) == 0 {
		return nil
	}
	out := make([]registration, len(regs))
	copy(out, regs)
	return out
}

// Destroy fires EventDestroy with the emitter itself as payload, then
// drops all registrations. New registrations fail from the moment the
// destroy emission starts, which keeps re-entrant On calls from leaking.
func (e *EventEmitter) Destroy() {
	e.mu.Lock()
	if e.destroyed || e.destroying {
		e.mu.Unlock()
		return
	}
	e.destroying = true
	regs := make([]registration, len(e.handlers[EventDestroy]))
	copy(regs, e.handlers[EventDestroy])
	e.mu.Unlock()

	for _, r := range regs {
		r.fn(e)
	}

	e.mu.Lock()
	e.destroyed = true
	e.handlers = nil
	e.mu.Unlock()
}

// Destroyed reports whether Destroy has completed.
func (e *EventEmitter) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}

// ListenerCount returns the number of active registrations for event.
func (e *EventEmitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[event])
}
