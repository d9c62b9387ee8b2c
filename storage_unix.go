//go:build !darwin && !windows

package ort

import (
	"os"
	"path/filepath"
)

// defaultCacheDir follows the XDG base directory layout:
// $XDG_DATA_HOME/<appName>/models/ if set, otherwise
// ~/.local/share/<appName>/models/
func defaultCacheDir(appName string) (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName, "models"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "models"), nil
}
