package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrismCut/internal/builder"
)

// AppConfig holds application-wide preferences and default build options.
type AppConfig struct {
	// Default build options applied when a model file carries none.
	DefaultHeight          float64 `json:"default_height"`
	DefaultTargetAxial     float64 `json:"default_target_axial"`
	DefaultTargetCartesian float64 `json:"default_target_cartesian"`
	DefaultTargetRadial    float64 `json:"default_target_radial"`
	DefaultTargetAzimuthal float64 `json:"default_target_azimuthal"`
	DefaultWorkers         int     `json:"default_workers"`
	DefaultProfile         string  `json:"default_profile"`

	// Viewer preferences.
	Palette     map[string]string `json:"palette"` // material category -> hex color
	RecentFiles []string          `json:"recent_files"`
	Theme       string            `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultHeight:  1.0,
		DefaultWorkers: 0,
		Palette: map[string]string{
			"fuel":      "#d64541",
			"moderator": "#4b4b4b",
			"structure": "#7f8c9b",
			"absorber":  "#1f3a5f",
		},
		RecentFiles: []string{},
		Theme:       "system",
	}
}

// ApplyToSpecs copies the default build options onto specs fields the model
// file left at zero. Model-file values always win.
func (c AppConfig) ApplyToSpecs(s *builder.Specs) {
	if s.Height == 0 {
		s.Height = c.DefaultHeight
	}
	if s.TargetAxialThickness == 0 {
		s.TargetAxialThickness = c.DefaultTargetAxial
	}
	if s.TargetCellThicknesses.Cartesian == 0 {
		s.TargetCellThicknesses.Cartesian = c.DefaultTargetCartesian
	}
	if s.TargetCellThicknesses.Radial == 0 {
		s.TargetCellThicknesses.Radial = c.DefaultTargetRadial
	}
	if s.TargetCellThicknesses.Azimuthal == 0 {
		s.TargetCellThicknesses.Azimuthal = c.DefaultTargetAzimuthal
	}
	if s.Workers == 0 {
		s.Workers = c.DefaultWorkers
	}
}

// RememberFile prepends a path to the recent-files list, dropping duplicates
// and capping the list at ten entries.
func (c *AppConfig) RememberFile(path string) {
	recent := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentFiles = recent
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.prismcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".prismcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. A missing file yields
// DefaultAppConfig with no error; fields absent from the file keep their
// default values.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	if config.Palette == nil {
		config.Palette = DefaultAppConfig().Palette
	}
	return config, nil
}
