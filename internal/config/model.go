// Package config loads model definitions from TOML files and manages the
// application's own configuration: JSON app config with defaults and merge
// semantics, named build profiles, and rolling backups of model files.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/hexmap"
	"github.com/piwi3910/PrismCut/internal/material"
)

// ModelFile is the raw TOML layout of a model definition.
type ModelFile struct {
	Name         string            `toml:"name"`
	Materials    []MaterialDef     `toml:"materials"`
	Shapes       []ShapeDef        `toml:"shapes"`
	Channels     []ChannelDef      `toml:"channels"`
	Blocks       []BlockDef        `toml:"blocks"`
	PinCells     []PinCellDef      `toml:"pincells"`
	Stacks       []StackDef        `toml:"stacks"`
	RectLattices []RectLatticeDef  `toml:"rect_lattices"`
	HexLattices  []HexLatticeDef   `toml:"hex_lattices"`
	Build        BuildDef          `toml:"build"`
}

type MaterialDef struct {
	Name        string  `toml:"name"`
	Density     float64 `toml:"density"`
	Temperature float64 `toml:"temperature"`
	Category    string  `toml:"category"`
}

type ShapeDef struct {
	Name   string  `toml:"name"`
	Kind   string  `toml:"kind"` // circle, rectangle, square, stadium
	Radius float64 `toml:"radius"`
	Length float64 `toml:"length"` // stadium straight-section length
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Side   float64 `toml:"side"`
}

type ChannelDef struct {
	Name     string  `toml:"name"`
	Kind     string  `toml:"kind"` // fuel, control
	Shape    string  `toml:"shape"`
	Material string  `toml:"material"`
	Rotation float64 `toml:"rotation"` // degrees, about the shape center
}

type BlockDef struct {
	Name          string            `toml:"name"`
	Pitch         float64           `toml:"pitch"`
	PrismMaterial string            `toml:"prism_material"`
	OuterMaterial string            `toml:"outer_material"` // optional, defaults to prism
	Channels      map[string]string `toml:"channels"`       // face -> channel name
}

type PinCellDef struct {
	Name          string    `toml:"name"`
	Radii         []float64 `toml:"radii"`
	Materials     []string  `toml:"materials"` // one per radius plus the outer
	OuterMaterial string    `toml:"outer_material"`
}

type StackDef struct {
	Name     string       `toml:"name"`
	Bottom   float64      `toml:"bottom"`
	Segments []SegmentDef `toml:"segments"`
}

type SegmentDef struct {
	Element string  `toml:"element"`
	Length  float64 `toml:"length"`
}

type RectLatticeDef struct {
	Name          string     `toml:"name"`
	Pitch         float64    `toml:"pitch"`
	OuterMaterial string     `toml:"outer_material"`
	Layout        [][]string `toml:"layout"` // rows top-down; "" leaves a cell empty
}

type HexLatticeDef struct {
	Name          string     `toml:"name"`
	Pitch         float64    `toml:"pitch"`
	Orientation   string     `toml:"orientation"`
	OuterMaterial string     `toml:"outer_material"`
	Layout        [][]string `toml:"layout"` // offset layout rows
}

type BuildDef struct {
	Height              float64 `toml:"height"`
	TargetAxial         float64 `toml:"target_axial"`
	TargetCartesian     float64 `toml:"target_cartesian"`
	TargetRadial        float64 `toml:"target_radial"`
	TargetAzimuthal     float64 `toml:"target_azimuthal"`
	DivideIntoQuadrants bool    `toml:"divide_into_quadrants"`
	Workers             int     `toml:"workers"`
}

// Model is a validated, fully linked model definition.
type Model struct {
	Name      string
	Materials map[string]material.Material
	Shapes    map[string]geom.Shape
	Channels  map[string]element.Channel
	Build     builder.Specs

	elements map[string]element.Element
	order    []string // element names in definition order
}

// Element looks up a named buildable element (block, pincell, stack, lattice).
func (m *Model) Element(name string) (element.Element, error) {
	el, ok := m.elements[name]
	if !ok {
		return nil, errdefs.New(errdefs.CodeNotFound, "model %q has no element %q", m.Name, name)
	}
	return el, nil
}

// ElementNames returns the buildable element names in definition order.
func (m *Model) ElementNames() []string {
	return append([]string(nil), m.order...)
}

// Load reads and validates a model definition from a TOML file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConfiguration, err, "reading model file %s", path)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a model definition from TOML text.
func LoadBytes(data []byte) (*Model, error) {
	var file ModelFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConfiguration, err, "parsing model definition")
	}
	return file.Link()
}

// Link resolves all name references and constructs the model's elements.
func (f *ModelFile) Link() (*Model, error) {
	m := &Model{
		Name:      f.Name,
		Materials: make(map[string]material.Material),
		Shapes:    make(map[string]geom.Shape),
		Channels:  make(map[string]element.Channel),
		elements:  make(map[string]element.Element),
	}
	if m.Name == "" {
		m.Name = "model_" + uuid.NewString()[:8]
	}

	for _, def := range f.Materials {
		if _, dup := m.Materials[def.Name]; dup {
			return nil, errdefs.New(errdefs.CodeConfiguration, "duplicate material %q", def.Name)
		}
		mat, err := material.New(def.Name, def.Density, def.Temperature, def.Category)
		if err != nil {
			return nil, err
		}
		m.Materials[def.Name] = mat
	}

	for _, def := range f.Shapes {
		if _, dup := m.Shapes[def.Name]; dup {
			return nil, errdefs.New(errdefs.CodeConfiguration, "duplicate shape %q", def.Name)
		}
		shape, err := buildShape(def)
		if err != nil {
			return nil, err
		}
		m.Shapes[def.Name] = shape
	}

	for _, def := range f.Channels {
		if _, dup := m.Channels[def.Name]; dup {
			return nil, errdefs.New(errdefs.CodeConfiguration, "duplicate channel %q", def.Name)
		}
		ch, err := m.buildChannel(def)
		if err != nil {
			return nil, err
		}
		m.Channels[def.Name] = ch
	}

	for _, def := range f.Blocks {
		blk, err := m.buildBlock(def)
		if err != nil {
			return nil, err
		}
		if err := m.addElement(def.Name, blk); err != nil {
			return nil, err
		}
	}

	for _, def := range f.PinCells {
		mats := make([]material.Material, 0, len(def.Materials))
		for _, name := range def.Materials {
			mat, err := m.mat(name, "pincell %q", def.Name)
			if err != nil {
				return nil, err
			}
			mats = append(mats, mat)
		}
		if def.OuterMaterial != "" {
			outer, err := m.mat(def.OuterMaterial, "pincell %q", def.Name)
			if err != nil {
				return nil, err
			}
			mats = append(mats, outer)
		}
		pin, err := element.NewCylindricalPinCell(def.Name, def.Radii, mats)
		if err != nil {
			return nil, err
		}
		if err := m.addElement(def.Name, pin); err != nil {
			return nil, err
		}
	}

	// Stacks and lattices may reference any element defined above them.
	for _, def := range f.Stacks {
		segments := make([]element.Segment, 0, len(def.Segments))
		for _, sd := range def.Segments {
			el, err := m.Element(sd.Element)
			if err != nil {
				return nil, errdefs.Wrap(errdefs.CodeConfiguration, err, "stack %q", def.Name)
			}
			seg, err := element.NewSegment(el, sd.Length)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		}
		stack, err := element.NewStack(def.Name, segments, def.Bottom)
		if err != nil {
			return nil, err
		}
		if err := m.addElement(def.Name, stack); err != nil {
			return nil, err
		}
	}

	for _, def := range f.RectLattices {
		outer, err := m.mat(def.OuterMaterial, "rect lattice %q", def.Name)
		if err != nil {
			return nil, err
		}
		layout, err := m.resolveLayout(def.Layout, "rect lattice %q", def.Name)
		if err != nil {
			return nil, err
		}
		lat, err := element.NewRectLattice(def.Name, def.Pitch, outer, layout)
		if err != nil {
			return nil, err
		}
		if err := m.addElement(def.Name, lat); err != nil {
			return nil, err
		}
	}

	for _, def := range f.HexLattices {
		outer, err := m.mat(def.OuterMaterial, "hex lattice %q", def.Name)
		if err != nil {
			return nil, err
		}
		orientation, err := hexmap.ParseOrientation(def.Orientation)
		if err != nil {
			return nil, err
		}
		layout, err := m.resolveLayout(def.Layout, "hex lattice %q", def.Name)
		if err != nil {
			return nil, err
		}
		lat, err := element.NewHexLatticeFromOffset(def.Name, def.Pitch, outer, orientation, layout)
		if err != nil {
			return nil, err
		}
		if err := m.addElement(def.Name, lat); err != nil {
			return nil, err
		}
	}

	m.Build = builder.Specs{
		TargetCellThicknesses: builder.Thicknesses{
			Cartesian: f.Build.TargetCartesian,
			Radial:    f.Build.TargetRadial,
			Azimuthal: f.Build.TargetAzimuthal,
		},
		Height:               f.Build.Height,
		TargetAxialThickness: f.Build.TargetAxial,
		DivideIntoQuadrants:  f.Build.DivideIntoQuadrants,
		Workers:              f.Build.Workers,
	}

	return m, nil
}

func (m *Model) addElement(name string, el element.Element) error {
	if name == "" {
		return errdefs.New(errdefs.CodeConfiguration, "element has no name")
	}
	if _, dup := m.elements[name]; dup {
		return errdefs.New(errdefs.CodeConfiguration, "duplicate element %q", name)
	}
	m.elements[name] = el
	m.order = append(m.order, name)
	return nil
}

func (m *Model) mat(name, context string, args ...any) (material.Material, error) {
	mat, ok := m.Materials[name]
	if !ok {
		return material.Material{}, errdefs.New(errdefs.CodeConfiguration,
			context+": unknown material %q", append(args, name)...)
	}
	return mat, nil
}

func (m *Model) buildChannel(def ChannelDef) (element.Channel, error) {
	shape, ok := m.Shapes[def.Shape]
	if !ok {
		return element.Channel{}, errdefs.New(errdefs.CodeConfiguration,
			"channel %q: unknown shape %q", def.Name, def.Shape)
	}
	mat, err := m.mat(def.Material, "channel %q", def.Name)
	if err != nil {
		return element.Channel{}, err
	}

	var ch element.Channel
	switch def.Kind {
	case "fuel":
		ch, err = element.NewFuelChannel(def.Name, shape, mat)
	case "control":
		ch, err = element.NewControlChannel(def.Name, shape, mat)
	default:
		return element.Channel{}, errdefs.New(errdefs.CodeConfiguration,
			"channel %q: kind must be fuel or control, got %q", def.Name, def.Kind)
	}
	if err != nil {
		return element.Channel{}, err
	}
	if def.Rotation != 0 {
		ch = ch.WithShapeRotation(def.Rotation)
	}
	return ch, nil
}

func (m *Model) buildBlock(def BlockDef) (*element.Block, error) {
	prism, err := m.mat(def.PrismMaterial, "block %q", def.Name)
	if err != nil {
		return nil, err
	}
	var outer *material.Material
	if def.OuterMaterial != "" {
		o, err := m.mat(def.OuterMaterial, "block %q", def.Name)
		if err != nil {
			return nil, err
		}
		outer = &o
	}

	channels := make(map[element.Face]element.Channel, len(def.Channels))
	for faceName, chName := range def.Channels {
		face, err := element.ParseFace(faceName)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.CodeConfiguration, err, "block %q", def.Name)
		}
		ch, ok := m.Channels[chName]
		if !ok {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"block %q: unknown channel %q", def.Name, chName)
		}
		channels[face] = ch
	}

	return element.NewBlock(def.Name, def.Pitch, prism, outer, channels)
}

func (m *Model) resolveLayout(layout [][]string, context string, args ...any) ([][]element.Element, error) {
	if len(layout) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, context+": layout is empty", args...)
	}
	resolved := make([][]element.Element, len(layout))
	for r, row := range layout {
		resolved[r] = make([]element.Element, len(row))
		for c, name := range row {
			if name == "" {
				continue
			}
			el, ok := m.elements[name]
			if !ok {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					context+": unknown element %q", append(args, name)...)
			}
			resolved[r][c] = el
		}
	}
	return resolved, nil
}

func buildShape(def ShapeDef) (geom.Shape, error) {
	switch def.Kind {
	case "circle":
		s, err := geom.NewCircle(def.Radius)
		return s, err
	case "rectangle":
		s, err := geom.NewRectangle(def.Width, def.Height)
		return s, err
	case "square":
		s, err := geom.NewSquare(def.Side)
		return s, err
	case "stadium":
		s, err := geom.NewStadium(def.Radius, def.Length)
		return s, err
	default:
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"shape %q: kind must be circle, rectangle, square, or stadium, got %q", def.Name, def.Kind)
	}
}
