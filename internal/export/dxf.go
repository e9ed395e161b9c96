package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/geom"
)

// layerColors cycles AutoCAD color numbers for per-material layers.
var layerColors = []dxfcolor.ColorNumber{
	dxfcolor.Red,
	dxfcolor.Green,
	dxfcolor.Blue,
	dxfcolor.Cyan,
	dxfcolor.Magenta,
	dxfcolor.Yellow,
	dxfcolor.White,
}

// arcSegments controls how finely circular arcs are flattened into line
// segments. Cap arcs on stadium channels round-trip through the chaining
// tolerance of downstream CAD importers at this resolution.
const arcSegments = 32

// ExportDXF writes a block cross-section as DXF entities: the block outline
// on its own layer and each channel outline on a layer named after the
// channel material. Coordinates are in the block frame, origin at the block
// center, units cm.
func ExportDXF(path string, blk *element.Block) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("BLOCK", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add block layer: %w", err)
	}
	hbp := blk.Pitch() / 2
	drawClosedPolygon(d, []point{
		{-hbp, -hbp}, {hbp, -hbp}, {hbp, hbp}, {-hbp, hbp},
	})

	layers := map[string]bool{}
	colorIdx := 0
	for _, placed := range blk.Channels() {
		if placed == nil {
			continue
		}
		layer := layerName(placed.Material().Name)
		if !layers[layer] {
			color := layerColors[colorIdx%len(layerColors)]
			colorIdx++
			if _, err := d.AddLayer(layer, color, table.LT_CONTINUOUS, false); err != nil {
				return fmt.Errorf("failed to add layer %q: %w", layer, err)
			}
			layers[layer] = true
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		drawPlacedChannel(d, placed)
	}

	return d.SaveAs(path)
}

type point struct {
	x, y float64
}

// transform maps a point from the channel shape frame into the block frame:
// rotate by the shape's own rotation, translate along -Y by the placement
// distance, then rotate about the block center.
func channelTransform(placed *element.PlacedChannel) func(point) point {
	shapeRot := placed.ShapeRotation() * math.Pi / 180
	blockRot := placed.RotationAboutBlockCenter() * math.Pi / 180
	dist := placed.DistanceFromBlockCenter()
	return func(p point) point {
		x := p.x*math.Cos(shapeRot) - p.y*math.Sin(shapeRot)
		y := p.x*math.Sin(shapeRot) + p.y*math.Cos(shapeRot)
		y -= dist
		return point{
			x: x*math.Cos(blockRot) - y*math.Sin(blockRot),
			y: x*math.Sin(blockRot) + y*math.Cos(blockRot),
		}
	}
}

func drawPlacedChannel(d *drawing.Drawing, placed *element.PlacedChannel) {
	tf := channelTransform(placed)

	switch shape := placed.Shape().(type) {
	case geom.Circle:
		center := tf(point{0, 0})
		d.Circle(center.x, center.y, 0, shape.R)

	case geom.Rectangle:
		hw, hh := shape.W/2, shape.H/2
		drawTransformedPolygon(d, tf, []point{
			{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
		})

	case geom.Stadium:
		// Two straight sides plus flattened semicircular caps.
		ha := shape.A / 2
		var outline []point
		outline = append(outline, point{-ha, -shape.R}, point{ha, -shape.R})
		outline = append(outline, arcPoints(ha, 0, shape.R, -90, 90)...)
		outline = append(outline, point{ha, shape.R}, point{-ha, shape.R})
		outline = append(outline, arcPoints(-ha, 0, shape.R, 90, 270)...)
		drawTransformedPolygon(d, tf, outline)
	}
}

// arcPoints flattens a circular arc into points, angles in degrees.
func arcPoints(cx, cy, r, startDeg, endDeg float64) []point {
	pts := make([]point, 0, arcSegments+1)
	start := startDeg * math.Pi / 180
	end := endDeg * math.Pi / 180
	for i := 0; i <= arcSegments; i++ {
		t := float64(i) / float64(arcSegments)
		angle := start + t*(end-start)
		pts = append(pts, point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)})
	}
	return pts
}

func drawTransformedPolygon(d *drawing.Drawing, tf func(point) point, pts []point) {
	transformed := make([]point, len(pts))
	for i, p := range pts {
		transformed[i] = tf(p)
	}
	drawClosedPolygon(d, transformed)
}

func drawClosedPolygon(d *drawing.Drawing, pts []point) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		d.Line(a.x, a.y, 0, b.x, b.y, 0)
	}
}

// layerName makes a material name safe for a DXF layer table entry.
func layerName(name string) string {
	safe := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			safe = append(safe, r-('a'-'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}
	return string(safe)
}
