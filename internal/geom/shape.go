// Package geom provides the 2D cross-section primitives used to describe
// channel and cell geometry: circles, rectangles, and stadiums (rectangles
// capped by semicircles), each convertible to a CSG region.
package geom

import (
	"math"

	"github.com/piwi3910/PrismCut/internal/csg"
	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Shape is a closed 2D figure centered on the origin of its own frame.
type Shape interface {
	// InnerRadius is the radius of the largest origin-centered circle fully
	// inside the shape.
	InnerRadius() float64
	// OuterRadius is the radius of the smallest origin-centered circle fully
	// containing the shape.
	OuterRadius() float64
	// Area is the enclosed area.
	Area() float64
	// Region is the CSG region enclosed by the shape in its own frame.
	Region() csg.Region
	// Key is a canonical content token. Shapes whose dimensions agree within
	// the relative tolerance produce equal keys.
	Key() string
	// Equals reports dimensional equality with another shape within the
	// relative tolerance.
	Equals(other Shape) bool
}

// Circle is a circle of radius R.
type Circle struct {
	R float64 `json:"r"` // cm
}

// NewCircle returns a circle of radius r.
func NewCircle(r float64) (Circle, error) {
	if r <= 0 {
		return Circle{}, errdefs.New(errdefs.CodeConfiguration, "circle radius must be positive, got %g", r)
	}
	return Circle{R: r}, nil
}

func (c Circle) InnerRadius() float64 { return c.R }
func (c Circle) OuterRadius() float64 { return c.R }
func (c Circle) Area() float64        { return math.Pi * c.R * c.R }

func (c Circle) Region() csg.Region {
	return csg.ZCylinder{R: c.R}.Inside()
}

func (c Circle) Key() string {
	return "circle(r=" + RoundKey(c.R) + ")"
}

func (c Circle) Equals(other Shape) bool {
	o, ok := other.(Circle)
	return ok && Close(c.R, o.R)
}

// Rectangle is an axis-aligned rectangle of width W along x and height H
// along y, with W >= H not required here; callers that need the wide
// orientation enforce it themselves.
type Rectangle struct {
	W float64 `json:"w"` // cm
	H float64 `json:"h"` // cm
}

// NewRectangle returns a rectangle with the given width and height.
func NewRectangle(w, h float64) (Rectangle, error) {
	if w <= 0 || h <= 0 {
		return Rectangle{}, errdefs.New(errdefs.CodeConfiguration, "rectangle dimensions must be positive, got %g x %g", w, h)
	}
	return Rectangle{W: w, H: h}, nil
}

// NewSquare returns a square rectangle with the given side length.
func NewSquare(side float64) (Rectangle, error) {
	return NewRectangle(side, side)
}

func (r Rectangle) InnerRadius() float64 { return math.Min(r.W, r.H) / 2 }
func (r Rectangle) OuterRadius() float64 { return math.Hypot(r.W, r.H) / 2 }
func (r Rectangle) Area() float64        { return r.W * r.H }

// IsSquare reports whether both sides agree within the relative tolerance.
func (r Rectangle) IsSquare() bool { return Close(r.W, r.H) }

func (r Rectangle) Region() csg.Region {
	return csg.RectPrism{W: r.W, H: r.H}.Inside()
}

func (r Rectangle) Key() string {
	return "rectangle(w=" + RoundKey(r.W) + ",h=" + RoundKey(r.H) + ")"
}

func (r Rectangle) Equals(other Shape) bool {
	o, ok := other.(Rectangle)
	return ok && Close(r.W, o.W) && Close(r.H, o.H)
}

// Stadium is a rectangle of length A along x capped by semicircles of radius
// R on both ends, so the overall extent is (A + 2R) by 2R.
type Stadium struct {
	R float64 `json:"r"` // cm, semicircle radius
	A float64 `json:"a"` // cm, flat length between semicircle centers
}

// NewStadium returns a stadium with semicircle radius r and flat length a.
// A zero flat length is rejected; use a Circle for that case.
func NewStadium(r, a float64) (Stadium, error) {
	if r <= 0 {
		return Stadium{}, errdefs.New(errdefs.CodeConfiguration, "stadium radius must be positive, got %g", r)
	}
	if a <= 0 {
		return Stadium{}, errdefs.New(errdefs.CodeConfiguration, "stadium flat length must be positive, got %g", a)
	}
	return Stadium{R: r, A: a}, nil
}

func (s Stadium) InnerRadius() float64 { return s.R }
func (s Stadium) OuterRadius() float64 { return s.A/2 + s.R }
func (s Stadium) Area() float64        { return math.Pi*s.R*s.R + 2*s.R*s.A }

func (s Stadium) Region() csg.Region {
	return csg.Union(
		csg.ZCylinder{X0: -s.A / 2, R: s.R}.Inside(),
		csg.ZCylinder{X0: s.A / 2, R: s.R}.Inside(),
		csg.RectPrism{W: s.A, H: 2 * s.R}.Inside(),
	)
}

func (s Stadium) Key() string {
	return "stadium(r=" + RoundKey(s.R) + ",a=" + RoundKey(s.A) + ")"
}

func (s Stadium) Equals(other Shape) bool {
	o, ok := other.(Stadium)
	return ok && Close(s.R, o.R) && Close(s.A, o.A)
}
