package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Cache levels reported to RecordCacheHit/RecordCacheMiss.
const (
	CacheLevelRaw      = "raw"      // get-or-load of backing-store records
	CacheLevelGroupSet = "groupset" // derivation cache
	CacheLevelDecision = "decision" // two-level membership decision cache
)

// Metrics records membership lookup and cache metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a membership lookup with duration and error status.
	RecordLookup(ctx context.Context, meta LookupMeta, duration time.Duration, err error)

	// RecordCacheHit records a hit at the given cache level.
	RecordCacheHit(ctx context.Context, level string)

	// RecordCacheMiss records a miss at the given cache level.
	RecordCacheMiss(ctx context.Context, level string)

	// RecordNegative records a raw-groups lookup that resolved to the
	// empty result.
	RecordNegative(ctx context.Context)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	negatives    metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"membership.lookup.total",
		metric.WithDescription("Total number of membership lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"membership.lookup.errors",
		metric.WithDescription("Total number of membership lookup errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"membership.lookup.duration_ms",
		metric.WithDescription("Membership lookup duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"membership.cache.hits",
		metric.WithDescription("Cache hits by level"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"membership.cache.misses",
		metric.WithDescription("Cache misses by level"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	negatives, err := meter.Int64Counter(
		"membership.raw.negatives",
		metric.WithDescription("Raw-groups lookups that resolved to the empty result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		negatives:    negatives,
	}, nil
}

// RecordLookup records metrics for a membership lookup.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta LookupMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("membership.component", meta.Component),
		attribute.String("membership.operation", meta.Operation),
	)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

func (m *metricsImpl) RecordCacheHit(ctx context.Context, level string) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("membership.cache.level", level)))
}

func (m *metricsImpl) RecordCacheMiss(ctx context.Context, level string) {
	m.cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("membership.cache.level", level)))
}

func (m *metricsImpl) RecordNegative(ctx context.Context) {
	m.negatives.Add(ctx, 1)
}

// NoopMetrics returns a Metrics implementation that does nothing.
func NoopMetrics() Metrics {
	return &noopMetrics{}
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta LookupMeta, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordCacheHit(ctx context.Context, level string)  {}
func (m *noopMetrics) RecordCacheMiss(ctx context.Context, level string) {}
func (m *noopMetrics) RecordNegative(ctx context.Context)                {}
