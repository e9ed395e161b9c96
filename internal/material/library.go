package material

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Library holds a user's saved material definitions.
type Library struct {
	Materials []Material `json:"materials"`
}

// DefaultLibrary returns a library populated with the materials of a classic
// molten-salt graphite-moderated core.
func DefaultLibrary() Library {
	return Library{
		Materials: []Material{
			{Name: "Fuel Salt", Density: 2.3275, Temperature: 900, Category: "fuel"},
			{Name: "Graphite", Density: 1.86, Temperature: 900, Category: "moderator"},
			{Name: "INOR-8", Density: 8.7745, Temperature: 900, Category: "structure"},
			{Name: "Control Rod Poison", Density: 5.873, Temperature: 900, Category: "absorber"},
			{Name: "Thimble Gas", Density: 0.001146, Temperature: 900, Category: "gas"},
			{Name: "Insulation", Density: 0.160185, Temperature: 900, Category: "structure"},
		},
	}
}

// Find returns a pointer to the material with the given name, or nil.
func (l *Library) Find(name string) *Material {
	for i := range l.Materials {
		if l.Materials[i].Name == name {
			return &l.Materials[i]
		}
	}
	return nil
}

// Names returns the material names in library order.
func (l *Library) Names() []string {
	names := make([]string, len(l.Materials))
	for i, m := range l.Materials {
		names[i] = m.Name
	}
	return names
}

// Add appends a material, rejecting duplicates by name.
func (l *Library) Add(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if l.Find(m.Name) != nil {
		return errdefs.New(errdefs.CodeConfiguration, "material %q already exists", m.Name)
	}
	l.Materials = append(l.Materials, m)
	return nil
}

// Remove deletes the material with the given name.
func (l *Library) Remove(name string) error {
	for i := range l.Materials {
		if l.Materials[i].Name == name {
			l.Materials = append(l.Materials[:i], l.Materials[i+1:]...)
			return nil
		}
	}
	return errdefs.New(errdefs.CodeNotFound, "material %q not in library", name)
}

// DefaultLibraryPath returns the default file path for the material library.
// This is located at ~/.prismcut/materials.json.
func DefaultLibraryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prismcut", "materials.json"), nil
}

// SaveLibrary writes the library to the specified JSON file. It creates
// parent directories if they do not exist.
func SaveLibrary(path string, lib Library) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLibrary reads the library from the specified JSON file. If the file
// does not exist, it returns the default library and saves it.
func LoadLibrary(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := DefaultLibrary()
			if saveErr := SaveLibrary(path, lib); saveErr != nil {
				return lib, saveErr
			}
			return lib, nil
		}
		return Library{}, err
	}
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return Library{}, errdefs.Wrap(errdefs.CodeConfiguration, err, "parsing material library %s", path)
	}
	return lib, nil
}
