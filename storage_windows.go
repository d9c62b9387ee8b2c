//go:build windows

package ort

import (
	"os"
	"path/filepath"
)

// defaultCacheDir returns %APPDATA%\<appName>\models\, falling back to the
// roaming profile under the home directory.
func defaultCacheDir(appName string) (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		appData = filepath.Join(home, "AppData", "Roaming")
	}
	return filepath.Join(appData, appName, "models"), nil
}
