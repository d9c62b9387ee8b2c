package ort

// Config configures model storage and the CLI.
type Config struct {
	// AppName determines the cache directory name and the environment
	// variable that overrides it.
	// Example: "xprim" → ~/.local/share/xprim/models/ on Linux
	AppName string `yaml:"app_name"`

	// CacheDir overrides the default model cache directory.
	// If empty, uses platform-appropriate default.
	// Can also be set via environment variable: <APPNAME>_MODELS_DIR
	CacheDir string `yaml:"cache_dir"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	// Empty means "info".
	LogLevel string `yaml:"log_level"`
}
