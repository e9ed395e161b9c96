package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
)

// Segment is one axial span of a stack: the element occupying it and its
// length.
type Segment struct {
	element Element
	length  float64 // cm
}

// NewSegment pairs an element with a positive axial length.
func NewSegment(el Element, length float64) (Segment, error) {
	if el == nil {
		return Segment{}, errdefs.New(errdefs.CodeConfiguration, "stack segment requires an element")
	}
	if length <= 0 {
		return Segment{}, errdefs.New(errdefs.CodeConfiguration, "stack segment length must be positive, got %g", length)
	}
	return Segment{element: el, length: length}, nil
}

func (s Segment) Element() Element { return s.element }
func (s Segment) Length() float64  { return s.length }

func (s Segment) Key() string {
	return "segment(" + s.element.Key() + ";l=" + geom.RoundKey(s.length) + ")"
}

// Stack is a column of axial segments stacked bottom to top, with its origin
// at the radial center of the segments.
type Stack struct {
	name      string
	segments  []Segment
	bottomPos float64
	length    float64
}

// NewStack constructs a stack from its segments, ordered bottom to top, with
// the bottom of the stack at the given axial position.
func NewStack(name string, segments []Segment, bottomPos float64) (*Stack, error) {
	if len(segments) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "stack requires at least one segment")
	}
	if name == "" {
		name = defaultName("stack")
	}

	s := &Stack{name: name, bottomPos: bottomPos}
	s.segments = append(s.segments, segments...)
	for _, segment := range segments {
		s.length += segment.length
	}
	return s, nil
}

func (s *Stack) Name() string       { return s.name }
func (s *Stack) BottomPos() float64 { return s.bottomPos }

// Length is the summed length of all segments.
func (s *Stack) Length() float64 { return s.length }

// Segments returns the segments bottom to top.
func (s *Stack) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

func (s *Stack) Key() string {
	var sb strings.Builder
	sb.WriteString("stack(z0=")
	sb.WriteString(geom.RoundKey(s.bottomPos))
	for _, segment := range s.segments {
		sb.WriteString(";")
		sb.WriteString(segment.Key())
	}
	sb.WriteString(")")
	return sb.String()
}
