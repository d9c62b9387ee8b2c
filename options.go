package ort

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLockTimeout is the default timeout for acquiring the per-file lock
// taken by Materialize.
const DefaultLockTimeout = 5 * time.Minute

// Option configures a Runtime or a Fetcher.
// Options that do not apply to a component are ignored by it.
type Option func(*options)

// options holds configuration shared by NewRuntime and NewFetcher.
type options struct {
	// httpClient is used for model downloads. Fetcher only.
	httpClient HTTPClient

	// logger receives diagnostic log messages. May be nil.
	logger Logger

	// registerer receives the component's Prometheus collectors.
	registerer prometheus.Registerer

	// progressFn is called as download bytes are written. Fetcher only.
	progressFn func(FetchProgress)

	// lockTimeout bounds the wait for Materialize's file lock. Fetcher only.
	lockTimeout time.Duration
}

// newOptions returns options with default values.
func newOptions() *options {
	return &options{
		httpClient:  http.DefaultClient,
		lockTimeout: DefaultLockTimeout,
	}
}

// WithHTTPClient sets a custom HTTP client for downloads.
// Useful for testing with mock servers or customizing timeouts.
// If not set, http.DefaultClient is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets a logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers the component's metrics with reg.
// If not set, metrics are kept in a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithProgress sets a callback for download progress updates.
// The callback runs on the goroutine calling Fetch.
func WithProgress(fn func(FetchProgress)) Option {
	return func(o *options) {
		o.progressFn = fn
	}
}

// WithLockTimeout sets how long Materialize waits for another fetch of the
// same file to finish. Non-positive values keep DefaultLockTimeout.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// HTTPClient is the interface for HTTP operations.
// *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// Logger is the interface for diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
