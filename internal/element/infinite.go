package element

import (
	"github.com/piwi3910/PrismCut/internal/csg"
	"github.com/piwi3910/PrismCut/internal/material"
)

// InfiniteMedium is a region of homogeneous material filling all space.
type InfiniteMedium struct {
	name string
	mat  material.Material
}

// NewInfiniteMedium returns an infinite medium of the given material.
func NewInfiniteMedium(name string, mat material.Material) *InfiniteMedium {
	if name == "" {
		name = defaultName("infinite_medium")
	}
	return &InfiniteMedium{name: name, mat: mat}
}

func (m *InfiniteMedium) Name() string                { return m.name }
func (m *InfiniteMedium) Material() material.Material { return m.mat }

func (m *InfiniteMedium) Key() string {
	return "infinite_medium(" + m.mat.Key() + ")"
}

// Universe is a single region-less cell covering all space.
func (m *InfiniteMedium) Universe() *csg.Universe {
	return &csg.Universe{Name: m.name, Cells: []csg.Cell{{Name: "medium", Material: m.mat}}}
}
