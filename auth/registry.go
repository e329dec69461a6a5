package auth

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of named strategies. The bootstrap
// registers one strategy per scheme and route groups fetch them by name,
// so no package-level mutable state links a route to its scheme.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register adds a strategy under its own name.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Get returns the strategy registered under the given name.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// MustGet returns the strategy registered under the given name.
// Panics if the name is not registered; call only during route wiring.
func (r *Registry) MustGet(name string) Strategy {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("auth: strategy %q not registered", name))
	}
	return s
}

// Names returns all registered strategy names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	return names
}
