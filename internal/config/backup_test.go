package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFileMissingSource(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Empty(t, path, "nothing to back up")
}

func TestBackupFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("version 1"), 0644))

	backupPath, err := BackupFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, backupPath)
	assert.Equal(t, filepath.Join(dir, ".backups"), filepath.Dir(backupPath))

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "version 1", string(data))
}

func TestBackupRollingPrune(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")

	for i := 0; i < maxBackups+3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0644))
		_, err := BackupFile(path)
		require.NoError(t, err)
	}

	backups, err := Backups(path)
	require.NoError(t, err)
	require.Len(t, backups, maxBackups, "old backups are pruned")

	// Newest first: the latest backup holds the last written content.
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, []byte{byte('a' + maxBackups + 2)}, data)
}

func TestBackupsIgnoreOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("m"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("o"), 0644))

	_, err := BackupFile(path)
	require.NoError(t, err)
	_, err = BackupFile(other)
	require.NoError(t, err)

	backups, err := Backups(path)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, filepath.Base(backups[0]), "model.toml.")
}
