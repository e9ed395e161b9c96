// Package element defines the reactor geometry element tree: square blocks
// with up to four edge channels, concentric pincells, infinite media, axial
// stacks, rectangular and hexagonal lattices, and MSRE-style stringers and
// control-rod channel columns.
//
// Elements are immutable values produced by validating constructors. They
// describe geometry only; turning an element into a structured mesh is the
// builder package's job, and the CSG hooks (Universe methods) expose the
// solid-region view consumed by the viewer and exports.
package element

import (
	"github.com/google/uuid"
)

// Element is a node of the geometry tree.
type Element interface {
	// Name is a free-form label carried through to built geometry and
	// reports. Names do not participate in equality.
	Name() string
	// Key is a canonical content token identifying the element's geometry
	// and materials within the relative tolerance. Two elements with equal
	// keys build identical meshes.
	Key() string
}

// defaultName labels an element constructed without a name.
func defaultName(kind string) string {
	return kind + "-" + uuid.New().String()[:8]
}
