package ort

import (
	"errors"
	"os"
	"strings"
)

// envVarName constructs an environment variable name from the app name.
// Converts appName to uppercase and appends "_MODELS_DIR".
// Example: envVarName("xprim") returns "XPRIM_MODELS_DIR".
func envVarName(appName string) string {
	return strings.ToUpper(appName) + "_MODELS_DIR"
}

// ResolveCacheDir returns the directory models are materialized into and
// creates it if needed.
// Priority: <APPNAME>_MODELS_DIR > Config.CacheDir > platform default.
func ResolveCacheDir(cfg Config) (string, error) {
	if cfg.AppName == "" {
		return "", errors.New("ort: AppName is required")
	}

	var dir string
	if envDir := os.Getenv(envVarName(cfg.AppName)); envDir != "" {
		dir = envDir
	} else if cfg.CacheDir != "" {
		dir = cfg.CacheDir
	} else {
		defaultDir, err := defaultCacheDir(cfg.AppName)
		if err != nil {
			return "", &PathError{Op: "resolve default cache dir", Path: cfg.AppName, Err: err}
		}
		dir = defaultDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &PathError{Op: "mkdir", Path: dir, Err: err}
	}
	return dir, nil
}
