//go:build darwin

package ort

import (
	"os"
	"path/filepath"
)

// defaultCacheDir returns ~/Library/Application Support/<appName>/models/
func defaultCacheDir(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", appName, "models"), nil
}
