package config

import "github.com/piwi3910/PrismCut/internal/errdefs"

// Built-in model definitions used by demos, tests, and the viewer's preset
// picker. They are stored as TOML text so presets and user files go through
// the exact same load path.

// PresetNames lists the built-in presets in menu order.
func PresetNames() []string {
	return []string{"classic-block", "control-block"}
}

// Preset returns a built-in model by name.
func Preset(name string) (*Model, error) {
	switch name {
	case "classic-block":
		return LoadBytes([]byte(classicBlockTOML))
	case "control-block":
		return LoadBytes([]byte(controlBlockTOML))
	default:
		return nil, errdefs.New(errdefs.CodeNotFound, "no preset %q", name)
	}
}

// classicBlockTOML is the canonical graphite block: 5.08 cm pitch with
// identical stadium fuel channels on all four faces.
const classicBlockTOML = `
name = "classic_block"

[[materials]]
name = "Fuel Salt"
density = 2.3275
temperature = 900.0
category = "fuel"

[[materials]]
name = "Graphite"
density = 1.86
temperature = 900.0
category = "moderator"

[[shapes]]
name = "fuel_stadium"
kind = "stadium"
radius = 0.508
length = 2.032

[[channels]]
name = "fuel_channel"
kind = "fuel"
shape = "fuel_stadium"
material = "Fuel Salt"

[[blocks]]
name = "block"
pitch = 5.08
prism_material = "Graphite"

[blocks.channels]
north = "fuel_channel"
south = "fuel_channel"
east = "fuel_channel"
west = "fuel_channel"

[build]
height = 1.0
`

// controlBlockTOML carries a single circular control channel sized so the
// derived cap cells exactly fill the block.
const controlBlockTOML = `
name = "control_block"

[[materials]]
name = "Fuel Salt"
density = 2.3275
temperature = 900.0
category = "fuel"

[[materials]]
name = "Graphite"
density = 1.86
temperature = 900.0
category = "moderator"

[[shapes]]
name = "control_circle"
kind = "circle"
radius = 3.01625

[[channels]]
name = "control_channel"
kind = "control"
shape = "control_circle"
material = "Fuel Salt"

[[blocks]]
name = "control_block"
pitch = 5.08
prism_material = "Graphite"

[blocks.channels]
north = "control_channel"

[build]
height = 1.0
`
