package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/csg"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

// Block is a square prismatic block with up to four flow channels, one per
// compass face, each either a fuel channel centered on the middle of the
// block edge or a control channel centered on the adjacent block cell.
type Block struct {
	name          string
	pitch         float64
	prismMaterial material.Material
	outerMaterial material.Material
	channels      [4]*PlacedChannel
}

// NewBlock constructs a block and places its channels. The channels map is
// keyed by face; absent faces carry no channel. A nil outerMaterial defaults
// to the prism material.
func NewBlock(name string, pitch float64, prismMaterial material.Material,
	outerMaterial *material.Material, channels map[Face]Channel) (*Block, error) {

	if pitch <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "block pitch must be positive, got %g", pitch)
	}
	if name == "" {
		name = defaultName("block")
	}

	outer := prismMaterial
	if outerMaterial != nil {
		outer = *outerMaterial
	}

	b := &Block{
		name:          name,
		pitch:         pitch,
		prismMaterial: prismMaterial,
		outerMaterial: outer,
	}

	for face, ch := range channels {
		placed, err := PlaceChannel(ch, face, pitch)
		if err != nil {
			return nil, err
		}
		b.channels[face] = &placed
	}

	return b, nil
}

func (b *Block) Name() string                     { return b.name }
func (b *Block) Pitch() float64                   { return b.pitch }
func (b *Block) PrismMaterial() material.Material { return b.prismMaterial }
func (b *Block) OuterMaterial() material.Material { return b.outerMaterial }

// Channels returns the four channel slots in face order [N, S, E, W]; absent
// channels are nil.
func (b *Block) Channels() [4]*PlacedChannel { return b.channels }

// Channel returns the channel at the given face, or nil.
func (b *Block) Channel(face Face) *PlacedChannel {
	if face < North || face > West {
		return nil
	}
	return b.channels[face]
}

// FuelChannels returns the present fuel channels in face order.
func (b *Block) FuelChannels() []*PlacedChannel { return b.channelsOfKind(FuelKind) }

// ControlChannels returns the present control channels in face order.
func (b *Block) ControlChannels() []*PlacedChannel { return b.channelsOfKind(ControlKind) }

func (b *Block) channelsOfKind(kind ChannelKind) []*PlacedChannel {
	var out []*PlacedChannel
	for _, ch := range b.channels {
		if ch != nil && ch.Kind() == kind {
			out = append(out, ch)
		}
	}
	return out
}

func (b *Block) HasFuelChannels() bool    { return len(b.FuelChannels()) > 0 }
func (b *Block) HasControlChannels() bool { return len(b.ControlChannels()) > 0 }

// FuelShapesEqual reports whether all present fuel channels share one shape.
// It is false when no fuel channels are present.
func (b *Block) FuelShapesEqual() bool { return shapesEqual(b.FuelChannels()) }

// ControlShapesEqual reports whether all present control channels share one
// shape. It is false when no control channels are present.
func (b *Block) ControlShapesEqual() bool { return shapesEqual(b.ControlChannels()) }

func shapesEqual(channels []*PlacedChannel) bool {
	if len(channels) == 0 {
		return false
	}
	first := channels[0].Shape()
	for _, ch := range channels[1:] {
		if !first.Equals(ch.Shape()) {
			return false
		}
	}
	return true
}

func (b *Block) Key() string {
	var sb strings.Builder
	sb.WriteString("block(p=")
	sb.WriteString(geom.RoundKey(b.pitch))
	sb.WriteString(";prism=")
	sb.WriteString(b.prismMaterial.Key())
	sb.WriteString(";outer=")
	sb.WriteString(b.outerMaterial.Key())
	for _, face := range AllFaces {
		sb.WriteString(";")
		sb.WriteString(face.String())
		sb.WriteString("=")
		if ch := b.channels[face]; ch != nil {
			sb.WriteString(ch.Key())
		} else {
			sb.WriteString("-")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// Universe is the block's CSG view: each channel as its own cell, the prism
// as the block square minus the channels, and the outer cell as everything
// beyond the square minus the channels (control channels overhang the edge).
func (b *Block) Universe() *csg.Universe {
	blockRegion := geom.Rectangle{W: b.pitch, H: b.pitch}.Region()

	var cells []csg.Cell
	var channelComplements []csg.Region
	for _, ch := range b.channels {
		if ch == nil {
			continue
		}
		cells = append(cells, ch.Cell())
		channelComplements = append(channelComplements, csg.Complement(ch.Region()))
	}

	prism := csg.Intersect(append([]csg.Region{blockRegion}, channelComplements...)...)
	outer := csg.Intersect(append([]csg.Region{csg.Complement(blockRegion)}, channelComplements...)...)

	cells = append(cells,
		csg.Cell{Name: "prism", Material: b.prismMaterial, Region: prism},
		csg.Cell{Name: "outer", Material: b.outerMaterial, Region: outer},
	)

	return &csg.Universe{Name: b.name, Cells: cells}
}
