package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the built action instances by id.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds a. IDs must be non-empty and unique.
func (r *Registry) Register(a Action) error {
	if a.ID() == "" {
		return fmt.Errorf("action has empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[a.ID()]; exists {
		return fmt.Errorf("action %s already registered", a.ID())
	}
	r.actions[a.ID()] = a
	return nil
}

// Get returns the action with the given id, or nil.
func (r *Registry) Get(id string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.actions[id]
}

// IDs returns the registered ids in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions)
}
