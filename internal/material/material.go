// Package material models the material descriptions attached to geometry
// elements and resolves them into mesh material handles. Descriptions are
// plain values; the resolver memoizes per distinct description so that two
// occurrences of the same material anywhere in a model share one handle.
package material

import (
	"fmt"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Material describes a physical material by name and bulk properties. It is
// an immutable value; equality is by content.
type Material struct {
	Name        string  `json:"name"`
	Density     float64 `json:"density"`     // g/cc
	Temperature float64 `json:"temperature"` // K
	Category    string  `json:"category"`    // e.g. "fuel", "moderator", "structure"
}

// New validates and returns a material description.
func New(name string, density, temperature float64, category string) (Material, error) {
	m := Material{Name: name, Density: density, Temperature: temperature, Category: category}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Validate checks the material's physical parameters.
func (m Material) Validate() error {
	if m.Name == "" {
		return errdefs.New(errdefs.CodeConfiguration, "material has no name")
	}
	if m.Density <= 0 {
		return errdefs.New(errdefs.CodeConfiguration, "material %q: density = %g", m.Name, m.Density)
	}
	if m.Temperature <= 0 {
		return errdefs.New(errdefs.CodeConfiguration, "material %q: temperature = %g", m.Name, m.Temperature)
	}
	return nil
}

// Key returns a stable content key for the description. Densities and
// temperatures are keyed at five significant figures so that descriptions
// differing only by float noise share a handle.
func (m Material) Key() string {
	return fmt.Sprintf("%s|%.5e|%.5e|%s", m.Name, m.Density, m.Temperature, m.Category)
}
