// Package scene holds the session context a controller binds to: the
// identifier to view-model map, the active session manager and its
// explicit message handler table.
package scene

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"mvvmkit-go/domain/viewmodel"
)

// Common errors for context operations.
var (
	ErrDuplicateIdentifier = errors.New("view model identifier already registered")
	ErrEmptyIdentifier     = errors.New("view model identifier is empty")
)

// Context maps view-model identifiers to instances for one session and
// carries the active session manager.
type Context struct {
	id         string
	viewModels map[string]viewmodel.ViewModel
	manager    Manager
	mu         sync.RWMutex
}

// NewContext creates an empty session context.
func NewContext(id string, manager Manager) *Context {
	return &Context{
		id:         id,
		viewModels: make(map[string]viewmodel.ViewModel),
		manager:    manager,
	}
}

// ID returns the context identifier.
func (c *Context) ID() string {
	return c.id
}

// Lookup retrieves a view-model by identifier.
func (c *Context) Lookup(identifier string) (viewmodel.ViewModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vm, ok := c.viewModels[identifier]
	return vm, ok
}

// Register adds vm under identifier. An identifier maps to at most one
// view-model; registering a taken identifier fails.
func (c *Context) Register(identifier string, vm viewmodel.ViewModel) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.viewModels[identifier]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, identifier)
	}
	c.viewModels[identifier] = vm
	return nil
}

// Remove drops the view-model registered under identifier.
func (c *Context) Remove(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.viewModels, identifier)
}

// Identifiers returns all registered identifiers, sorted.
func (c *Context) Identifiers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.viewModels))
	for id := range c.viewModels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered view-models.
func (c *Context) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.viewModels)
}

// Manager returns the active session manager, or nil.
func (c *Context) Manager() Manager {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.manager
}

// SetManager replaces the active session manager.
func (c *Context) SetManager(manager Manager) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manager = manager
}

// Snapshot captures every registered view-model that implements
// viewmodel.Snapshotter, ordered by identifier.
func (c *Context) Snapshot() []Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snaps := make([]Snapshot, 0, len(c.viewModels))
	for id, vm := range c.viewModels {
		s, ok := vm.(viewmodel.Snapshotter)
		if !ok {
			continue
		}
		snaps = append(snaps, Snapshot{
			Identifier: id,
			Kind:       fmt.Sprintf("%T", vm),
			State:      s.Snapshot(),
		})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Identifier < snaps[j].Identifier })
	return snaps
}
