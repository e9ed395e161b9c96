package element

import (
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
)

// Stringer is a block extruded to a length: the full-height column a single
// block occupies in a core.
type Stringer struct {
	name   string
	block  *Block
	length float64 // cm
}

// NewStringer pairs a block with a positive extrusion length.
func NewStringer(name string, block *Block, length float64) (*Stringer, error) {
	if block == nil {
		return nil, errdefs.New(errdefs.CodeConfiguration, "stringer requires a block")
	}
	if length <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "stringer length must be positive, got %g", length)
	}
	if name == "" {
		name = defaultName("stringer")
	}
	return &Stringer{name: name, block: block, length: length}, nil
}

func (s *Stringer) Name() string    { return s.name }
func (s *Stringer) Block() *Block   { return s.block }
func (s *Stringer) Length() float64 { return s.length }

func (s *Stringer) Key() string {
	return "stringer(" + s.block.Key() + ";l=" + geom.RoundKey(s.length) + ")"
}

// AsStack lowers the stringer to its single-segment stack form.
func (s *Stringer) AsStack() (*Stack, error) {
	segment, err := NewSegment(s.block, s.length)
	if err != nil {
		return nil, err
	}
	return NewStack(s.name, []Segment{segment}, 0)
}
