package rule

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds rule instances keyed by id and indexed by the tag
// categories they listen to.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byType map[string][]Rule
	any    []Rule // rules with no signal_types
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byType: make(map[string][]Rule),
	}
}

// Register adds r. IDs must be non-empty and unique.
func (r *Registry) Register(rule Rule) error {
	id := rule.ID()
	if id == "" {
		return fmt.Errorf("rule has empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("rule %s already registered", id)
	}
	r.byID[id] = rule

	types := rule.SignalTypes()
	if len(types) == 0 {
		r.any = insertByID(r.any, rule)
		return nil
	}
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		r.byType[t] = insertByID(r.byType[t], rule)
	}
	return nil
}

// Unregister removes the rule with the given id.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, exists := r.byID[id]
	if !exists {
		return fmt.Errorf("rule %s not found", id)
	}
	delete(r.byID, id)

	r.any = removeByID(r.any, id)
	for _, t := range rule.SignalTypes() {
		if rest := removeByID(r.byType[t], id); len(rest) > 0 {
			r.byType[t] = rest
		} else {
			delete(r.byType, t)
		}
	}
	return nil
}

// Get returns the rule with the given id, or nil.
func (r *Registry) Get(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id]
}

// ForSignal returns the enabled rules listening to signalType, ordered by id.
func (r *Registry) ForSignal(signalType string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[signalType]
	out := make([]Rule, 0, len(typed)+len(r.any))
	for _, rule := range typed {
		if rule.Config().Enabled {
			out = append(out, rule)
		}
	}
	for _, rule := range r.any {
		if rule.Config().Enabled {
			out = append(out, rule)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// All returns every registered rule ordered by id.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

func insertByID(rules []Rule, rule Rule) []Rule {
	i := sort.Search(len(rules), func(i int) bool { return rules[i].ID() >= rule.ID() })
	rules = append(rules, nil)
	copy(rules[i+1:], rules[i:])
	rules[i] = rule
	return rules
}

func removeByID(rules []Rule, id string) []Rule {
	for i, rule := range rules {
		if rule.ID() == id {
			return append(rules[:i:i], rules[i+1:]...)
		}
	}
	return rules
}
