// Package selection tracks multi-select state for bulk operations.
// Selection lives outside the items themselves as a set of IDs, so item
// updates and reloads never carry selection flags around.
package selection

import (
	"sort"
	"sync"
)

// Controller is a thread-safe set of selected item IDs.
type Controller struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewController creates an empty selection.
func NewController() *Controller {
	return &Controller{ids: make(map[string]struct{})}
}

// Toggle flips the selection state of an ID and returns the new state.
func (c *Controller) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.ids[id]; ok {
		delete(c.ids, id)
		return false
	}
	c.ids[id] = struct{}{}
	return true
}

// Select marks an ID as selected.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[id] = struct{}{}
}

// Deselect removes an ID from the selection.
func (c *Controller) Deselect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, id)
}

// IsSelected reports whether an ID is selected.
func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ids[id]
	return ok
}

// Count returns the number of selected IDs.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// IDs returns the selected IDs in sorted order.
func (c *Controller) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = make(map[string]struct{})
}

// Prune drops selected IDs that are no longer present in the live set.
// Call it after reloads and bulk deletes so the selection never references
// vanished items.
func (c *Controller) Prune(liveIDs []string) {
	live := make(map[string]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.ids {
		if _, ok := live[id]; !ok {
			delete(c.ids, id)
		}
	}
}
