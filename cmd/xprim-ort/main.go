// Command xprim-ort is a test CLI harness for the ort package.
// It demonstrates the CLI integration and provides a working example.
//
// Configuration is loaded from environment variables (a .env file in the
// working directory is read first):
//   - XPRIM_CONFIG: Path to a YAML config file (optional)
//   - XPRIM_MODELS_DIR: Override for the cache directory (optional)
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	ort "github.com/prethora/xprim-ort"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid command line arguments or config.
	ExitInvalidArgs = 2

	// ExitNetworkError indicates a transport failure during a download.
	ExitNetworkError = 5

	// ExitSizeMismatch indicates a download did not match its declared size.
	ExitSizeMismatch = 6

	// ExitStorageError indicates a filesystem operation failed.
	ExitStorageError = 7

	// ExitNativeError indicates the native runtime reported a failure.
	ExitNativeError = 8
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := ort.Config{AppName: "xprim"}
	if path := os.Getenv("XPRIM_CONFIG"); path != "" {
		loaded, err := ort.LoadConfig(path, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(ExitInvalidArgs)
		}
		cfg = loaded
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitInvalidArgs)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))

	cmd := ort.NewCommand(cfg, ort.WithLogger(logger))
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fe *ort.FetchError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case ort.FetchCopySize, ort.FetchMissingContentLength:
			return ExitSizeMismatch
		default:
			return ExitNetworkError
		}
	}

	switch {
	case errors.Is(err, ort.ErrNativeCall):
		return ExitNativeError
	case errors.Is(err, ort.ErrResource):
		return ExitStorageError
	case errors.Is(err, ort.ErrValidation), errors.Is(err, ort.ErrEncoding):
		return ExitInvalidArgs
	default:
		return ExitGeneralError
	}
}
