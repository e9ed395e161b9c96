// Package csg provides a small constructive solid geometry model for 2D
// cross-sections: half-spaces of axis-aligned quadric surfaces combined with
// boolean operators and affine transforms. Regions answer point containment
// queries, which is what the viewer hit-testing, export outlines, and the
// element universe builders need.
package csg

import "math"

// Region is a set of points in the XY plane.
type Region interface {
	// Contains reports whether the point (x, y) lies inside the region.
	// Boundary points count as inside.
	Contains(x, y float64) bool
}

// ZCylinder is an infinite cylinder along the Z axis, seen in cross-section
// as a circle of radius R centered at (X0, Y0).
type ZCylinder struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	R  float64 `json:"r"` // Radius (cm)
}

// Inside returns the region of points within the cylinder.
func (c ZCylinder) Inside() Region { return cylRegion{c, true} }

// Outside returns the region of points beyond the cylinder.
func (c ZCylinder) Outside() Region { return cylRegion{c, false} }

type cylRegion struct {
	surf   ZCylinder
	inside bool
}

func (r cylRegion) Contains(x, y float64) bool {
	dx := x - r.surf.X0
	dy := y - r.surf.Y0
	in := dx*dx+dy*dy <= r.surf.R*r.surf.R
	return in == r.inside
}

// RectPrism is an infinite rectangular prism along the Z axis, seen in
// cross-section as a W x H rectangle centered at (CX, CY).
type RectPrism struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	W  float64 `json:"w"` // Width (cm)
	H  float64 `json:"h"` // Height (cm)
}

// Inside returns the region of points within the prism.
func (p RectPrism) Inside() Region { return prismRegion{p, true} }

// Outside returns the region of points beyond the prism.
func (p RectPrism) Outside() Region { return prismRegion{p, false} }

type prismRegion struct {
	surf   RectPrism
	inside bool
}

func (r prismRegion) Contains(x, y float64) bool {
	hw := r.surf.W * 0.5
	hh := r.surf.H * 0.5
	in := x >= r.surf.CX-hw && x <= r.surf.CX+hw &&
		y >= r.surf.CY-hh && y <= r.surf.CY+hh
	return in == r.inside
}

type intersection struct{ regions []Region }

func (r intersection) Contains(x, y float64) bool {
	for _, reg := range r.regions {
		if !reg.Contains(x, y) {
			return false
		}
	}
	return true
}

type union struct{ regions []Region }

func (r union) Contains(x, y float64) bool {
	for _, reg := range r.regions {
		if reg.Contains(x, y) {
			return true
		}
	}
	return false
}

type complement struct{ region Region }

func (r complement) Contains(x, y float64) bool {
	return !r.region.Contains(x, y)
}

// Intersect returns the region common to all given regions.
func Intersect(regions ...Region) Region { return intersection{regions} }

// Union returns the region covered by any of the given regions.
func Union(regions ...Region) Region { return union{regions} }

// Complement returns the region of points outside the given region.
func Complement(region Region) Region { return complement{region} }

type translated struct {
	region Region
	dx, dy float64
}

func (r translated) Contains(x, y float64) bool {
	return r.region.Contains(x-r.dx, y-r.dy)
}

type rotated struct {
	region   Region
	sin, cos float64
}

func (r rotated) Contains(x, y float64) bool {
	// Map the query point through the inverse rotation.
	return r.region.Contains(x*r.cos+y*r.sin, -x*r.sin+y*r.cos)
}

// Translate returns the region shifted by (dx, dy).
func Translate(region Region, dx, dy float64) Region {
	return translated{region, dx, dy}
}

// RotateZ returns the region rotated counterclockwise about the origin by the
// given angle in degrees.
func RotateZ(region Region, degrees float64) Region {
	rad := degrees * math.Pi / 180.0
	return rotated{region, math.Sin(rad), math.Cos(rad)}
}
