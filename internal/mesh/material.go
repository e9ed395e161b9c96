package mesh

import "fmt"

// Material is a resolved mesh material handle. Handles are produced by the
// material resolver, which guarantees that two identical material
// descriptions map to the same handle (same ID).
type Material struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Density     float64 `json:"density"`     // g/cc
	Temperature float64 `json:"temperature"` // K
}

// Key returns a stable content key for the material.
func (m Material) Key() string {
	return fmt.Sprintf("m%d:%s", m.ID, m.Name)
}
