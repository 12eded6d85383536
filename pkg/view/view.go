// Package view implements the disposal-safe component core: a lifecycle
// state machine per view, an ownership tree of named subviews with
// cascading teardown, and a binding registry that guarantees every
// model, bus, and DOM handler a view takes out is released exactly once
// when the view goes away.
package view

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/go-vista/vista/pkg/dom"
	"github.com/go-vista/vista/pkg/errors"
	"github.com/go-vista/vista/pkg/events"
	"github.com/go-vista/vista/pkg/mediator"
	"github.com/go-vista/vista/pkg/template"
)

// Hook is a user-supplied lifecycle extension point. Hooks registered in
// Options run in slice order; the framework's own post-hooks run after
// the whole list, exactly once per lifecycle call, no matter how many
// user hooks exist. This replaces super-call chaining: there is no hook
// a user override can forget to invoke.
type Hook func(v *View) error

// RenderFunc replaces the default template render step. It returns the
// nodes that become the root element's content.
type RenderFunc func(v *View) ([]dom.Node, error)

// Options configures a view at construction time.
type Options struct {
	// Tag is the root element's tag. Default "div".
	Tag string
	// ID is an explicit view id, also set as the root's id attribute.
	// Default: a fresh uuid (not reflected in the DOM).
	ID string
	// ClassName is set as the root's class attribute.
	ClassName string

	// AutoRender makes initialization trigger the first render.
	AutoRender bool
	// Container, if set, receives the root element on first render.
	Container *dom.Element
	// ContainerMode is the insertion mode used for the container
	// attachment. Default dom.ModeAppend.
	ContainerMode dom.InsertMode

	// Template is the template source rendered into the root.
	Template string
	// TemplateProvider compiles Template. Default: template.HTMLProvider.
	TemplateProvider template.Provider
	// TemplateData supplies render data. Default: the bound model's
	// attributes, else the bound collection's models under "items".
	TemplateData template.DataFunc
	// Render, if set, replaces the template pipeline entirely.
	Render RenderFunc

	// Model is the bound model. Its destroy event disposes the view.
	Model *events.Model
	// Collection is the bound collection. Its destroy event disposes
	// the view.
	Collection *events.Collection
	// Mediator is the pub/sub handle. Default: mediator.Default().
	Mediator *mediator.Mediator

	// StrictSubviews makes Attach fail on occupied names instead of
	// replacing the occupant.
	StrictSubviews bool

	// OnInitialize hooks run during Initialize, before the automatic
	// destroy subscriptions and the guaranteed afterInitialize step.
	OnInitialize []Hook
	// AfterInitialize hooks run once the view is initialized, before an
	// AutoRender first render. Useful for attaching subviews that must
	// exist by the time the first render happens.
	AfterInitialize []Hook
	// AfterRender hooks run at the end of every successful Render call,
	// after the guaranteed container attachment.
	AfterRender []Hook
}

// View is a node in the component tree.
type View struct {
	id   string
	opts Options

	state    State
	parent   *View
	root     *dom.Element
	renderer template.Renderer
	attached bool
	inflight int

	deferredDispose bool

	bindings  bindingRegistry
	subviews  subviewTree
	delegator delegator
	med       *mediator.Mediator

	model      *events.Model
	collection *events.Collection

	disposerMu sync.Mutex
	disposers  []func()
}

// New constructs a view in StateConstructed. Call Initialize before
// rendering or attaching subviews.
func New(opts Options) *View {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	tag := opts.Tag
	if tag == "" {
		tag = "div"
	}
	root := dom.NewElement(tag)
	if opts.ID != "" {
		root.SetAttr("id", opts.ID)
	}
	if opts.ClassName != "" {
		root.SetAttr("class", opts.ClassName)
	}
	med := opts.Mediator
	if med == nil {
		med = mediator.Default()
	}
	v := &View{
		id:         id,
		opts:       opts,
		root:       root,
		med:        med,
		model:      opts.Model,
		collection: opts.Collection,
	}
	v.bindings.owner = v
	v.subviews.owner = v
	v.delegator.owner = v
	return v
}

// Create constructs and initializes a view in one call.
func Create(opts Options) (*View, error) {
	v := New(opts)
	if err := v.Initialize(); err != nil {
		return nil, err
	}
	return v, nil
}

// ID returns the view's identifier.
func (v *View) ID() string { return v.id }

// State returns the current lifecycle stage.
func (v *View) State() State { return v.state }

// Root returns the root element, or nil after disposal.
func (v *View) Root() *dom.Element { return v.root }

// Parent returns the owning view, or nil for a top-level view. The
// back-reference never extends the child's lifetime.
func (v *View) Parent() *View { return v.parent }

// Model returns the bound model, or nil.
func (v *View) Model() *events.Model { return v.model }

// Collection returns the bound collection, or nil.
func (v *View) Collection() *events.Collection { return v.collection }

// Mediator returns the pub/sub handle this view routes through.
func (v *View) Mediator() *mediator.Mediator { return v.med }

// Initialize drives StateConstructed to StateInitialized. It runs, in
// order: the user OnInitialize hooks, the automatic subscriptions to the
// bound model's and collection's destroy events, then the guaranteed
// afterInitialize step, which runs the user AfterInitialize hooks and
// triggers the first render when AutoRender is set. A Dispose issued
// from any of the hooks is deferred until Initialize unwinds.
func (v *View) Initialize() error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Initialize"}
	}
	if v.state != StateConstructed {
		return &errors.ViewError{
			Op:   "view.Initialize",
			Kind: errors.KindUnknown,
			View: v.id,
			Err:  fmt.Errorf("state is %s, want %s", v.state, StateConstructed),
		}
	}
	v.state = StateInitializing
	v.inflight++
	defer v.finishLifecycleOp()

	for _, h := range v.opts.OnInitialize {
		if err := h(v); err != nil {
			return &errors.ViewError{Op: "view.Initialize", Kind: errors.KindUnknown, View: v.id, Err: err}
		}
	}

	if v.model != nil {
		if err := v.bindings.bind(v.model, events.EventDestroy, v.onEmitterDestroyed); err != nil {
			return err
		}
	}
	if v.collection != nil {
		if err := v.bindings.bind(v.collection, events.EventDestroy, v.onEmitterDestroyed); err != nil {
			return err
		}
	}

	// afterInitialize: guaranteed, runs exactly once.
	v.state = StateInitialized
	for _, h := range v.opts.AfterInitialize {
		if err := h(v); err != nil {
			return &errors.ViewError{Op: "view.Initialize", Kind: errors.KindUnknown, View: v.id, Err: err}
		}
	}
	if v.opts.AutoRender {
		return v.Render()
	}
	return nil
}

// onEmitterDestroyed disposes the view when a bound emitter announces
// its own destruction. Failures have no caller to surface to, so they
// go to the global error handler.
func (v *View) onEmitterDestroyed(any) {
	if err := v.Dispose(); err != nil && err != errors.ErrDisposeDeferred {
		errors.Report(&errors.ViewError{
			Op:   "view.onEmitterDestroyed",
			Kind: errors.KindDisposed,
			View: v.id,
			Err:  err,
		})
	}
}

// Render drives the view to StateRendered. The content step (Options.
// Render, or the template pipeline) replaces the root's children; the
// guaranteed afterRender step attaches the root to the container on the
// first render only, then runs the user AfterRender hooks. Calling
// Render again re-renders in place.
func (v *View) Render() error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Render"}
	}
	if v.state < StateInitialized {
		return &errors.ViewError{
			Op:   "view.Render",
			Kind: errors.KindRender,
			View: v.id,
			Err:  fmt.Errorf("render before initialize (state %s)", v.state),
		}
	}

	v.inflight++
	defer v.finishLifecycleOp()

	nodes, err := v.renderContent()
	if err != nil {
		return err
	}
	v.root.ReplaceChildren(nodes...)

	// afterRender: guaranteed, runs exactly once per Render call.
	if !v.attached && v.opts.Container != nil {
		if err := dom.Insert(v.root, v.opts.Container, v.opts.ContainerMode); err != nil {
			return &errors.ViewError{Op: "view.Render", Kind: errors.KindRender, View: v.id, Err: err}
		}
		v.attached = true
	}
	v.state = StateRendered

	for _, h := range v.opts.AfterRender {
		if err := h(v); err != nil {
			return &errors.ViewError{Op: "view.Render", Kind: errors.KindRender, View: v.id, Err: err}
		}
	}
	return nil
}

// finishLifecycleOp unwinds one level of in-flight lifecycle work
// (Initialize or Render, which nest under hooks and AutoRender) and runs
// a disposal that was requested mid-flight once the outermost level
// returns.
func (v *View) finishLifecycleOp() {
	v.inflight--
	if v.inflight == 0 && v.deferredDispose {
		v.deferredDispose = false
		if err := v.dispose(); err != nil {
			errors.Report(&errors.ViewError{
				Op:   "view.Dispose",
				Kind: errors.KindDisposed,
				View: v.id,
				Err:  err,
			})
		}
	}
}

func (v *View) renderContent() ([]dom.Node, error) {
	if v.opts.Render != nil {
		return v.opts.Render(v)
	}
	if v.opts.Template == "" {
		return nil, &errors.MissingTemplateError{View: v.id}
	}
	if v.renderer == nil {
		provider := v.opts.TemplateProvider
		if provider == nil {
			provider = &template.HTMLProvider{}
		}
		renderer, err := provider.Compile(v.opts.Template)
		if err != nil {
			return nil, &errors.ViewError{Op: "view.Render", Kind: errors.KindTemplate, View: v.id, Err: err}
		}
		v.renderer = renderer
	}
	data, err := v.templateData()
	if err != nil {
		return nil, err
	}
	markup, err := v.renderer.Render(data)
	if err != nil {
		return nil, &errors.ViewError{Op: "view.Render", Kind: errors.KindTemplate, View: v.id, Err: err}
	}
	nodes, err := dom.Parse(markup)
	if err != nil {
		return nil, &errors.ViewError{Op: "view.Render", Kind: errors.KindRender, View: v.id, Err: err}
	}
	return nodes, nil
}

// templateData resolves the render data source: explicit func, bound
// model, bound collection, in that order.
func (v *View) templateData() (map[string]any, error) {
	switch {
	case v.opts.TemplateData != nil:
		return v.opts.TemplateData(), nil
	case v.model != nil:
		return v.model.Attributes(), nil
	case v.collection != nil:
		items := make([]map[string]any, 0, v.collection.Len())
		for _, m := range v.collection.Models() {
			items = append(items, m.Attributes())
		}
		return map[string]any{"items": items}, nil
	default:
		return nil, &errors.MissingTemplateDataError{View: v.id}
	}
}

// Dispose tears the view down: subviews depth-first, then model/bus
// bindings, then delegated DOM handlers, then mediator subscriptions and
// registered disposers, then element references. A second call is a safe
// no-op. Child failures never abort the cascade; they come back
// aggregated in a CascadeError after every sibling had its chance.
//
// Dispose during an in-flight Initialize or Render defers teardown until
// the outermost lifecycle call unwinds and returns
// errors.ErrDisposeDeferred, never success.
func (v *View) Dispose() error {
	if v.state == StateDisposing || v.state == StateDisposed {
		return nil
	}
	if v.inflight > 0 {
		v.deferredDispose = true
		return errors.ErrDisposeDeferred
	}
	return v.dispose()
}

func (v *View) dispose() error {
	v.state = StateDisposing

	// Leave the parent's table without triggering another disposal.
	// Skipped when the parent's own cascade is what got us here.
	if p := v.parent; p != nil && p.state < StateDisposing {
		p.subviews.forget(v)
	}
	v.parent = nil

	errs := v.subviews.disposeAll()
	v.bindings.unbindAll()
	v.delegator.undelegateAll()
	v.med.UnsubscribeAll(v)
	v.runDisposers()

	if v.root != nil {
		v.root.Detach()
	}
	v.root = nil
	v.renderer = nil
	v.model = nil
	v.collection = nil
	v.opts.Container = nil

	v.state = StateDisposed

	if len(errs) > 0 {
		return &errors.CascadeError{View: v.id, Errs: errs}
	}
	return nil
}

// OnDispose registers a cleanup function that runs during disposal, after
// all bindings are released. Disposers run in reverse registration order.
// If the view is already disposed, cleanup runs immediately. The returned
// function unregisters the disposer.
func (v *View) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	v.disposerMu.Lock()
	defer v.disposerMu.Unlock()
	if v.state == StateDisposed {
		cleanup()
		return func() {}
	}
	index := len(v.disposers)
	v.disposers = append(v.disposers, cleanup)
	return func() {
		v.disposerMu.Lock()
		defer v.disposerMu.Unlock()
		if index < len(v.disposers) {
			v.disposers[index] = nil
		}
	}
}

func (v *View) runDisposers() {
	v.disposerMu.Lock()
	disposers := v.disposers
	v.disposers = nil
	v.disposerMu.Unlock()
	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
}

// Subscribe routes a pub/sub subscription through the view's mediator
// under the view's identity, so disposal drops it automatically.
func (v *View) Subscribe(topic string, fn mediator.Handler) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Subscribe"}
	}
	v.med.Subscribe(topic, v, fn)
	return nil
}

// Unsubscribe removes a prior Subscribe registration.
func (v *View) Unsubscribe(topic string, fn mediator.Handler) {
	v.med.Unsubscribe(topic, v, fn)
}

// Publish sends an event through the view's mediator.
func (v *View) Publish(topic string, data any) error {
	if v.state >= StateDisposing {
		return &errors.DisposedError{View: v.id, Op: "Publish"}
	}
	v.med.Publish(topic, data)
	return nil
}
