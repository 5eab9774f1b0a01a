package observe

import (
	"context"
	"time"
)

// LookupFunc is the signature for membership lookup functions.
// This is the standard function signature that Middleware wraps.
type LookupFunc func(ctx context.Context) (any, error)

// Middleware wraps membership lookups with observability (tracing, metrics,
// logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe LookupFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
//   - Ownership: Result values are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a LookupFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(meta LookupMeta, fn LookupFunc) LookupFunc {
	return func(ctx context.Context) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx)
		duration := time.Since(start)

		// End span (records error status if err != nil)
		m.tracer.EndSpan(span, err)

		m.metrics.RecordLookup(ctx, meta, duration, err)

		fields := []Field{
			{Key: "operation", Value: meta.FullName()},
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000.0},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			m.logger.Error(ctx, "membership lookup failed", fields...)
		} else {
			m.logger.Debug(ctx, "membership lookup completed", fields...)
		}

		return result, err
	}
}

// NoopMiddleware creates a Middleware that traces, records, and logs nothing.
func NoopMiddleware() *Middleware {
	return NewMiddleware(NewNoopTracer(), NoopMetrics(), NoopLogger())
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	tracer := NewTracer(obs.Tracer())

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
