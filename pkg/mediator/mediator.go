// Package mediator provides the Publish/Subscribe broker views route
// global events through. Subscriptions carry an owner identity so a
// disposing view can drop every one of its subscriptions in a single
// call, which is what keeps the global bus from retaining handlers of
// dead components.
package mediator

import (
	"sync"
	"unsafe"
)

// Handler receives the payload of a published event.
type Handler func(data any)

type subscription struct {
	owner any
	fn    Handler
	key   uintptr
}

// handlerKey matches handlers by the func value's underlying funcval
// pointer, which separates distinct closures sharing one body.
func handlerKey(fn Handler) uintptr {
	return *(*uintptr)(unsafe.Pointer(&fn))
}

// Mediator is an in-process topic broker. The zero value is not usable;
// create instances with New. Tests should use their own instance rather
// than the process-wide Default.
type Mediator struct {
	mu   sync.Mutex
	subs map[string][]subscription
}

// New creates an isolated mediator.
func New() *Mediator {
	return &Mediator{subs: make(map[string][]subscription)}
}

// Subscribe registers fn for topic under owner. Subscribing the same
// (owner, topic, fn) tuple twice replaces the prior subscription.
func (m *Mediator) Subscribe(topic string, owner any, fn Handler) {
	if fn == nil {
		return
	}
	sub := subscription{owner: owner, fn: fn, key: handlerKey(fn)}
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subs[topic]
	for i, s := range subs {
		if s.owner == owner && s.key == sub.key {
			subs[i] = sub
			return
		}
	}
	m.subs[topic] = append(subs, sub)
}

// Unsubscribe removes a prior subscription. No-op if absent.
func (m *Mediator) Unsubscribe(topic string, owner any, fn Handler) {
	if fn == nil {
		return
	}
	key := handlerKey(fn)
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subs[topic]
	for i, s := range subs {
		if s.owner == owner && s.key == key {
			m.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			if len(m.subs[topic]) == 0 {
				delete(m.subs, topic)
			}
			return
		}
	}
}

// UnsubscribeAll removes every subscription held for owner, across all
// topics. Views call this unconditionally during disposal.
func (m *Mediator) UnsubscribeAll(owner any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for topic, subs := range m.subs {
		kept := subs[:0]
		for _, s := range subs {
			if s.owner != owner {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(m.subs, topic)
		} else {
			m.subs[topic] = kept
		}
	}
}

// Publish invokes every handler subscribed to topic with data. Handlers
// run outside the broker's lock and may subscribe or unsubscribe during
// the publish; such changes do not affect the in-flight publish.
func (m *Mediator) Publish(topic string, data any) {
	m.mu.Lock()
	subs := m.subs[topic]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	m.mu.Unlock()

	for _, s := range snapshot {
		s.fn(data)
	}
}

// SubscriberCount returns the number of subscriptions for topic.
func (m *Mediator) SubscriberCount(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[topic])
}

var (
	defaultMu  sync.Mutex
	defaultMed *Mediator
)

// Default returns the process-wide mediator, creating it on first use.
// Views fall back to it when no mediator is injected.
func Default() *Mediator {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultMed == nil {
		defaultMed = New()
	}
	return defaultMed
}

// ResetDefault discards the process-wide mediator. The next Default call
// creates a fresh one. Intended for test isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMed = nil
}
