package game

import (
	"fmt"
	"sort"
	"sync"
)

// Descriptor is the presentation-facing metadata for one game kind.
type Descriptor struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry is a thread-safe catalog of game descriptors.
type Registry struct {
	games map[string]Descriptor
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]Descriptor)}
}

// Register adds a descriptor. Registering the same kind twice replaces it.
func (r *Registry) Register(d Descriptor) error {
	if d.Kind == "" {
		return fmt.Errorf("game kind cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[d.Kind] = d
	return nil
}

// Get retrieves a descriptor by kind.
func (r *Registry) Get(kind string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.games[kind]
	return d, ok
}

// List returns all descriptors ordered by kind.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.games))
	for _, d := range r.games {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Count returns the number of registered games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
