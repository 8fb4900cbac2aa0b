package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("config file not found")

// Find looks for FileName in startDir and then in each parent directory.
// It returns the absolute path of the first one found.
func Find(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNotFound
		}
		dir = parent
	}
}
