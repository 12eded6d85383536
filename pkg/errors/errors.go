// Package errors provides structured error handling for the Vista toolkit.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDisposed indicates an operation on a disposed view or destroyed emitter.
	KindDisposed
	// KindBinding indicates an event binding or unbinding failure.
	KindBinding
	// KindSubview indicates a subview attach/detach failure.
	KindSubview
	// KindTemplate indicates a missing or failing template or template data.
	KindTemplate
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDisposed:
		return "disposed"
	case KindBinding:
		return "binding"
	case KindSubview:
		return "subview"
	case KindTemplate:
		return "template"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ViewError represents a structured error in the Vista toolkit.
type ViewError struct {
	// Op is the operation that failed (e.g., "view.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// View is the id of the view involved, if applicable.
	View string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ViewError) Error() string {
	if e.View != "" {
		return fmt.Sprintf("%s [%s] view=%s: %v", e.Op, e.Kind, e.View, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ViewError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "view.Dispose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// DisposedError reports a lifecycle or binding operation invoked after a
// view's disposal completed.
type DisposedError struct {
	// View is the id of the disposed view.
	View string
	// Op is the operation that was attempted.
	Op string
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("%s called on disposed view %s", e.Op, e.View)
}

// MissingTemplateError reports a render attempt on a view with no
// configured template.
type MissingTemplateError struct {
	// View is the id of the view that attempted to render.
	View string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("view %s has no template configured", e.View)
}

// MissingTemplateDataError reports a render attempt on a view with no
// template data source: no data func, no bound model, no bound collection.
type MissingTemplateDataError struct {
	// View is the id of the view that attempted to render.
	View string
}

func (e *MissingTemplateDataError) Error() string {
	return fmt.Sprintf("view %s has no template data source configured", e.View)
}

// DuplicateSubviewError reports an attach under an occupied name when the
// caller requested non-replacing semantics.
type DuplicateSubviewError struct {
	// Name is the occupied subview name.
	Name string
}

func (e *DuplicateSubviewError) Error() string {
	return fmt.Sprintf("subview name %q is already taken", e.Name)
}

// ErrEmitterDestroyed is returned when subscribing to an emitter that has
// already been destroyed. Unsubscribe calls against destroyed emitters are
// silent no-ops so that bulk teardown can proceed.
var ErrEmitterDestroyed = stderrors.New("emitter destroyed")

// ErrDisposeDeferred is returned when Dispose is requested while the view
// is mid-render. Teardown runs when the render call unwinds; the Dispose
// call itself must not report success for a view that is still live.
var ErrDisposeDeferred = stderrors.New("dispose deferred until render completes")

// CascadeError aggregates per-child failures from a cascading disposal.
// The cascade is best-effort: every sibling is disposed before the
// collected failures surface here.
type CascadeError struct {
	// View is the id of the parent whose cascade collected the failures.
	View string
	// Errs holds one error per failed child disposal.
	Errs []error
}

func (e *CascadeError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("disposal cascade of view %s: %d error(s): %s",
		e.View, len(e.Errs), strings.Join(msgs, "; "))
}

func (e *CascadeError) Unwrap() []error {
	return e.Errs
}

// Handler receives errors reported by the Vista toolkit.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ViewError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
