package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxBackups caps how many timestamped copies of a file are kept.
const maxBackups = 5

// BackupFile copies path into a sibling .backups directory with a timestamped
// name before the caller overwrites it. Older copies beyond maxBackups are
// pruned. A missing source file is not an error; there is nothing to back up.
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s for backup: %w", path, err)
	}

	dir := filepath.Join(filepath.Dir(path), ".backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	base := filepath.Base(path)
	stamp := time.Now().UTC().Format("20060102T150405.000000000")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s.%s", base, stamp))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}

	if err := pruneBackups(dir, base); err != nil {
		return "", err
	}
	return backupPath, nil
}

// Backups lists existing backups of path, newest first.
func Backups(path string) ([]string, error) {
	dir := filepath.Join(filepath.Dir(path), ".backups")
	return listBackups(dir, filepath.Base(path))
}

func listBackups(dir, base string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), base+".") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	// Timestamp suffixes sort lexicographically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func pruneBackups(dir, base string) error {
	paths, err := listBackups(dir, base)
	if err != nil {
		return err
	}
	for _, p := range paths[min(len(paths), maxBackups):] {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("pruning backup %s: %w", p, err)
		}
	}
	return nil
}
