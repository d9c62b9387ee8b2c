package ort

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Runtime is the call-site helper for the native layer. Every native call
// goes through Call (or CallValue), which translates and releases the
// returned status.
//
// A Runtime holds no per-call state and is safe for concurrent use, provided
// the native layer never hands the same status to two calls.
type Runtime struct {
	// api is the native layer, wrapped to count releases.
	api NativeAPI

	// logger receives diagnostic messages. May be nil.
	logger Logger

	// metrics records translation outcomes.
	metrics *runtimeMetrics
}

// NewRuntime creates a Runtime over api.
// Returns an error if api is nil.
func NewRuntime(api NativeAPI, opts ...Option) (*Runtime, error) {
	if api == nil {
		return nil, errors.New("ort: NativeAPI is required")
	}

	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := newRuntimeMetrics(o.registerer)
	return &Runtime{
		api:     &countingAPI{NativeAPI: api, releases: m.releases},
		logger:  o.logger,
		metrics: m,
	}, nil
}

// Call invokes fn, which must perform exactly one native call and return its
// status, and translates that status. A failure is returned as a *CallError
// for op. The status is released before Call returns.
func (r *Runtime) Call(op Op, fn func() Status) error {
	detail := translateStatus(r.api, fn())
	if detail == nil {
		r.metrics.translations.WithLabelValues(op.String(), outcomeOK).Inc()
		return nil
	}

	outcome := outcomeError
	if detail.DecodeErr() != nil {
		outcome = outcomeDecodeError
	}
	r.metrics.translations.WithLabelValues(op.String(), outcome).Inc()

	err := newCallError(op, detail)
	if r.logger != nil {
		r.logger.Debug("native call failed", "op", op.String(), "error", err.Error())
	}
	return err
}

// CallValue is Call for native functions that return a value through an out
// parameter. The zero value of T is returned on failure.
func CallValue[T any](r *Runtime, op Op, fn func(out *T) Status) (T, error) {
	var out T
	if err := r.Call(op, func() Status { return fn(&out) }); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// countingAPI counts status releases on the way to the native layer.
type countingAPI struct {
	NativeAPI

	releases prometheus.Counter
}

func (c *countingAPI) ReleaseStatus(status Status) {
	c.releases.Inc()
	c.NativeAPI.ReleaseStatus(status)
}
