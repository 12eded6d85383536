package dom

// Event is dispatched against an element and bubbles to its ancestors.
type Event struct {
	// Type is the event name ("click", "input", ...).
	Type string
	// Target is the element the event originated on.
	Target *Element
	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element
	// Data is an optional payload.
	Data any

	stopped bool
}

// StopPropagation prevents the event from bubbling further.
func (e *Event) StopPropagation() {
	e.stopped = true
}

type listener struct {
	typ string
	fn  func(*Event)
}

// AddEventListener registers fn for events of the given type reaching
// this element, either directly or by bubbling. The returned function
// removes the listener and is safe to call more than once.
func (e *Element) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	l := &listener{typ: typ, fn: fn}
	e.listeners = append(e.listeners, l)
	return func() {
		for i, cur := range e.listeners {
			if cur == l {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners for typ on this element.
func (e *Element) ListenerCount(typ string) int {
	n := 0
	for _, l := range e.listeners {
		if l.typ == typ {
			n++
		}
	}
	return n
}

// Dispatch fires an event of the given type at this element and bubbles
// it through the ancestor chain until stopped or the root is reached.
func (e *Element) Dispatch(typ string, data any) *Event {
	ev := &Event{Type: typ, Target: e, Data: data}
	for cur := e; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		for _, l := range append([]*listener(nil), cur.listeners...) {
			if l.typ == typ {
				l.fn(ev)
			}
		}
		if ev.stopped {
			break
		}
	}
	return ev
}
