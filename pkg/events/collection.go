package events

import "sync"

// Collection events. Add/Remove carry the affected model; Reset carries
// the collection.
const (
	EventAdd    = "add"
	EventRemove = "remove"
	EventReset  = "reset"
)

// Collection is an ordered, observable list of models. It does not own
// its models: destroying the collection does not destroy them.
type Collection struct {
	EventEmitter
	itemMu sync.Mutex
	items  []*Model
}

// NewCollection creates a collection seeded with models.
func NewCollection(models ...*Model) *Collection {
	c := &Collection{}
	c.items = append(c.items, models...)
	return c
}

// Add appends a model and emits "add" with it.
func (c *Collection) Add(m *Model) {
	if m == nil {
		return
	}
	c.itemMu.Lock()
	c.items = append(c.items, m)
	c.itemMu.Unlock()
	c.Emit(EventAdd, m)
}

// Remove drops the first occurrence of m and emits "remove" with it.
// No-op if m is not in the collection.
func (c *Collection) Remove(m *Model) {
	c.itemMu.Lock()
	found := false
	for i, item := range c.items {
		if item == m {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			found = true
			break
		}
	}
	c.itemMu.Unlock()
	if found {
		c.Emit(EventRemove, m)
	}
}

// Reset replaces the contents and emits "reset" with the collection.
func (c *Collection) Reset(models ...*Model) {
	c.itemMu.Lock()
	c.items = append([]*Model(nil), models...)
	c.itemMu.Unlock()
	c.Emit(EventReset, c)
}

// Models returns a copy of the current contents.
func (c *Collection) Models() []*Model {
	c.itemMu.Lock()
	defer c.itemMu.Unlock()
	return append([]*Model(nil), c.items...)
}

// Len returns the number of models.
func (c *Collection) Len() int {
	c.itemMu.Lock()
	defer c.itemMu.Unlock()
	return len(c.items)
}

// Destroy fires the destroy event, then detaches the contents. The models
// themselves stay alive.
func (c *Collection) Destroy() {
	c.EventEmitter.Destroy()
	c.itemMu.Lock()
	c.items = nil
	c.itemMu.Unlock()
}
