package material

import (
	"sort"
	"sync"

	"github.com/piwi3910/PrismCut/internal/mesh"
)

// Resolver turns material descriptions into mesh material handles. Resolution
// is memoized: the same description always yields the same handle, and IDs
// are assigned in first-resolution order. Resolver is safe for concurrent
// use.
type Resolver struct {
	mu     sync.Mutex
	byKey  map[string]mesh.Material
	nextID int
}

// NewResolver returns an empty resolver. IDs start at 1.
func NewResolver() *Resolver {
	return &Resolver{byKey: make(map[string]mesh.Material), nextID: 1}
}

// Resolve returns the mesh material handle for the description, creating one
// on first sight.
func (r *Resolver) Resolve(m Material) mesh.Material {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := m.Key()
	if handle, ok := r.byKey[key]; ok {
		return handle
	}
	handle := mesh.Material{
		ID:          r.nextID,
		Name:        m.Name,
		Density:     m.Density,
		Temperature: m.Temperature,
	}
	r.nextID++
	r.byKey[key] = handle
	return handle
}

// Resolved returns all handles issued so far, ordered by ID.
func (r *Resolver) Resolved() []mesh.Material {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]mesh.Material, 0, len(r.byKey))
	for _, handle := range r.byKey {
		out = append(out, handle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
