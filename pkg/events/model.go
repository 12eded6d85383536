package events

import (
	"fmt"
	"reflect"
	"sync"
)

// EventChange fires once per Set call that actually changes an attribute.
// EventChangePrefix + name fires for the specific attribute, with the new
// value as payload.
const (
	EventChange       = "change"
	EventChangePrefix = "change:"
)

// ChangeEvent names the per-attribute change event for attr.
func ChangeEvent(attr string) string {
	return EventChangePrefix + attr
}

// Model is an observable attribute map. Setting an attribute emits
// "change:<attr>" with the new value, then "change" with the model.
// Destroying the model fires the destroy event so bound views can
// dispose themselves.
type Model struct {
	EventEmitter
	attrMu sync.Mutex
	attrs  map[string]any
}

// NewModel creates a model seeded with a copy of attrs (may be nil).
func NewModel(attrs map[string]any) *Model {
	m := &Model{attrs: make(map[string]any, len(attrs))}
	for k, v := range attrs {
		m.attrs[k] = v
	}
	return m
}

// Get returns the attribute value and whether it is present.
func (m *Model) Get(name string) (any, bool) {
	m.attrMu.Lock()
	defer m.attrMu.Unlock()
	v, ok := m.attrs[name]
	return v, ok
}

// GetString returns the attribute rendered as a string, or "" if absent.
func (m *Model) GetString(name string) string {
	v, ok := m.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set stores value under name and, if the value changed, emits
// "change:<name>" followed by "change". Setting an attribute to its
// current value emits nothing.
func (m *Model) Set(name string, value any) {
	m.attrMu.Lock()
	if m.attrs == nil {
		m.attrs = make(map[string]any)
	}
	old, existed := m.attrs[name]
	if existed && reflect.DeepEqual(old, value) {
		m.attrMu.Unlock()
		return
	}
	m.attrs[name] = value
	m.attrMu.Unlock()

	m.Emit(ChangeEvent(name), value)
	m.Emit(EventChange, m)
}

// SetAll applies every entry of attrs via Set, one change emission per
// attribute that actually changed.
func (m *Model) SetAll(attrs map[string]any) {
	for k, v := range attrs {
		m.Set(k, v)
	}
}

// Unset removes an attribute, emitting change events if it was present.
func (m *Model) Unset(name string) {
	m.attrMu.Lock()
	_, existed := m.attrs[name]
	delete(m.attrs, name)
	m.attrMu.Unlock()
	if existed {
		m.Emit(ChangeEvent(name), nil)
		m.Emit(EventChange, m)
	}
}

// Attributes returns a copy of the attribute map. This is the default
// template data for views bound to the model.
func (m *Model) Attributes() map[string]any {
	m.attrMu.Lock()
	defer m.attrMu.Unlock()
	out := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}
