package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// BuildProfile is a named set of build options.
type BuildProfile struct {
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	Height              float64 `json:"height"`
	TargetAxial         float64 `json:"target_axial"`
	TargetCartesian     float64 `json:"target_cartesian"`
	TargetRadial        float64 `json:"target_radial"`
	TargetAzimuthal     float64 `json:"target_azimuthal"`
	DivideIntoQuadrants bool    `json:"divide_into_quadrants"`
	Workers             int     `json:"workers"`
	IsBuiltIn           bool    `json:"-"`
}

// Specs converts the profile to builder options.
func (p BuildProfile) Specs() builder.Specs {
	return builder.Specs{
		TargetCellThicknesses: builder.Thicknesses{
			Cartesian: p.TargetCartesian,
			Radial:    p.TargetRadial,
			Azimuthal: p.TargetAzimuthal,
		},
		Height:               p.Height,
		TargetAxialThickness: p.TargetAxial,
		DivideIntoQuadrants:  p.DivideIntoQuadrants,
		Workers:              p.Workers,
	}
}

// BuiltInProfiles returns the shipped profiles. "coarse" meshes one cell per
// geometric region; "fine" subdivides toward transport-quality cell sizes.
func BuiltInProfiles() []BuildProfile {
	return []BuildProfile{
		{
			Name:        "coarse",
			Description: "one mesh cell per geometric region",
			Height:      1.0,
			IsBuiltIn:   true,
		},
		{
			Name:            "fine",
			Description:     "subdivided cells for transport-quality meshes",
			Height:          1.0,
			TargetCartesian: 0.15,
			TargetRadial:    0.1,
			TargetAzimuthal: 0.3,
			TargetAxial:     5.0,
			Workers:         4,
			IsBuiltIn:       true,
		},
	}
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []BuildProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]BuildProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BuildProfile{}, nil
		}
		return nil, err
	}

	var profiles []BuildProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// AllProfiles returns built-in profiles followed by the custom profiles from
// the given path. A custom profile shadowing a built-in name wins.
func AllProfiles(path string) ([]BuildProfile, error) {
	custom, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	shadowed := make(map[string]bool, len(custom))
	for _, p := range custom {
		shadowed[p.Name] = true
	}
	var all []BuildProfile
	for _, p := range BuiltInProfiles() {
		if !shadowed[p.Name] {
			all = append(all, p)
		}
	}
	return append(all, custom...), nil
}

// FindProfile looks a profile up by name among built-ins and the custom
// profiles at path.
func FindProfile(path, name string) (BuildProfile, error) {
	all, err := AllProfiles(path)
	if err != nil {
		return BuildProfile{}, err
	}
	for _, p := range all {
		if p.Name == name {
			return p, nil
		}
	}
	return BuildProfile{}, errdefs.New(errdefs.CodeNotFound, "no build profile %q", name)
}

// UpsertProfile adds or replaces a custom profile by name and persists the
// result. Built-in profiles cannot be replaced in place; an upserted profile
// with a built-in name shadows it.
func UpsertProfile(path string, profile BuildProfile) error {
	if profile.Name == "" {
		return errdefs.New(errdefs.CodeConfiguration, "profile has no name")
	}
	profile.IsBuiltIn = false

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return err
	}
	replaced := false
	for i, p := range profiles {
		if p.Name == profile.Name {
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}
	return SaveCustomProfiles(path, profiles)
}

// DeleteProfile removes a custom profile by name and persists the result.
// Deleting a built-in or unknown name is an error.
func DeleteProfile(path, name string) error {
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return err
	}
	for i, p := range profiles {
		if p.Name == name {
			return SaveCustomProfiles(path, append(profiles[:i], profiles[i+1:]...))
		}
	}
	for _, p := range BuiltInProfiles() {
		if p.Name == name {
			return errdefs.New(errdefs.CodeConfiguration, "profile %q is built in", name)
		}
	}
	return errdefs.New(errdefs.CodeNotFound, "no custom build profile %q", name)
}
