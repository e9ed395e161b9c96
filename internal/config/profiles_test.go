package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

func profilesPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "profiles.json")
}

func TestBuiltInProfiles(t *testing.T) {
	profiles := BuiltInProfiles()
	require.Len(t, profiles, 2)
	for _, p := range profiles {
		assert.True(t, p.IsBuiltIn)
	}

	coarse, err := FindProfile(profilesPath(t), "coarse")
	require.NoError(t, err)
	specs := coarse.Specs()
	assert.InDelta(t, 1.0, specs.Height, 1e-12)
	assert.Zero(t, specs.TargetCellThicknesses.Cartesian, "coarse profile leaves targets unset")
}

func TestProfileCRUD(t *testing.T) {
	path := profilesPath(t)

	// Empty store: only built-ins visible.
	all, err := AllProfiles(path)
	require.NoError(t, err)
	require.Len(t, all, 2)

	custom := BuildProfile{Name: "demo", Height: 30, TargetAxial: 10, Workers: 2}
	require.NoError(t, UpsertProfile(path, custom))

	got, err := FindProfile(path, "demo")
	require.NoError(t, err)
	assert.False(t, got.IsBuiltIn)
	assert.InDelta(t, 30.0, got.Height, 1e-12)

	// Update in place.
	custom.Height = 60
	require.NoError(t, UpsertProfile(path, custom))
	all, err = AllProfiles(path)
	require.NoError(t, err)
	require.Len(t, all, 3, "upsert replaces, never appends a duplicate")

	require.NoError(t, DeleteProfile(path, "demo"))
	_, err = FindProfile(path, "demo")
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeNotFound))
}

func TestProfileShadowsBuiltIn(t *testing.T) {
	path := profilesPath(t)
	require.NoError(t, UpsertProfile(path, BuildProfile{Name: "fine", Height: 99}))

	all, err := AllProfiles(path)
	require.NoError(t, err)
	require.Len(t, all, 2, "shadowed built-in is hidden")

	got, err := FindProfile(path, "fine")
	require.NoError(t, err)
	assert.InDelta(t, 99.0, got.Height, 1e-12)
	assert.False(t, got.IsBuiltIn)
}

func TestDeleteProfileErrors(t *testing.T) {
	path := profilesPath(t)

	err := DeleteProfile(path, "coarse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "built in")

	err = DeleteProfile(path, "nope")
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeNotFound))
}

func TestUpsertProfileRequiresName(t *testing.T) {
	err := UpsertProfile(profilesPath(t), BuildProfile{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
}
