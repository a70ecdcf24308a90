package rules

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds rules by id.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Default returns a registry holding every built-in rule.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(NewDocPresence())
	r.MustRegister(NewDocNamePrefix())
	return r
}

// Register adds rule. Ids must be non-empty and unique.
func (r *Registry) Register(rule Rule) error {
	id := rule.ID()
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("rule id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("rule %q is already registered", id)
	}
	r.rules[id] = rule
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	return rule, ok
}

// All returns every rule sorted by id.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	slices.SortFunc(out, func(a, b Rule) int { return strings.Compare(a.ID(), b.ID()) })
	return out
}
