package ort

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ort"

// Outcome label values for status translations.
const (
	outcomeOK          = "ok"
	outcomeError       = "error"
	outcomeDecodeError = "decode_error"
)

// runtimeMetrics tracks the native status boundary.
type runtimeMetrics struct {
	// translations counts translated statuses by op and outcome.
	translations *prometheus.CounterVec

	// releases counts ReleaseStatus calls, including nil handles.
	releases prometheus.Counter
}

func newRuntimeMetrics(reg prometheus.Registerer) *runtimeMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &runtimeMetrics{
		translations: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "native",
				Name:      "status_translations_total",
				Help:      "Total number of native statuses translated, by call site and outcome.",
			},
			[]string{"op", "outcome"},
		)),
		releases: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "native",
				Name:      "status_releases_total",
				Help:      "Total number of native status handles released.",
			},
		)),
	}
}

// fetchMetrics tracks model downloads.
type fetchMetrics struct {
	// fetches counts finished fetch attempts by result.
	fetches *prometheus.CounterVec

	// bytes counts bytes written to destination files.
	bytes prometheus.Counter

	// duration observes the wall time of fetch attempts.
	duration prometheus.Histogram
}

func newFetchMetrics(reg prometheus.Registerer) *fetchMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &fetchMetrics{
		fetches: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "fetch",
				Name:      "attempts_total",
				Help:      "Total number of model fetch attempts, by result.",
			},
			[]string{"result"},
		)),
		bytes: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "fetch",
				Name:      "bytes_written_total",
				Help:      "Total number of model bytes written to disk.",
			},
		)),
		duration: register(reg, prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "fetch",
				Name:      "duration_seconds",
				Help:      "Model fetch duration in seconds.",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
			},
		)),
	}
}

// register registers c with reg, returning the already registered collector
// when an identical one exists. Several components may share a registerer.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
