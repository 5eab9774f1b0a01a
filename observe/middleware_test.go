package observe

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestMiddleware_SuccessPath verifies a successful lookup records telemetry.
func TestMiddleware_SuccessPath(t *testing.T) {
	// Set up tracing
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	// Set up metrics
	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := NewMetrics(mp.Meter("test"))

	// Create middleware
	mw := NewMiddleware(tracer, metrics, NoopLogger())

	meta := LookupMeta{Component: "resolver", Operation: "consumer_groups"}
	expectedResult := "lookup_result"

	innerFunc := func(ctx context.Context) (any, error) {
		return expectedResult, nil
	}

	// Wrap and execute
	wrapped := mw.Wrap(meta, innerFunc)
	result, err := wrapped(context.Background())

	// Verify no error
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Verify result
	if result != expectedResult {
		t.Errorf("expected result %q, got %q", expectedResult, result)
	}

	// Verify span was recorded
	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "membership.resolver.consumer_groups" {
		t.Errorf("expected span name 'membership.resolver.consumer_groups', got %q", spans[0].Name())
	}

	// Verify metrics
	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	totalMetric := findMetric(rm, "membership.lookup.total")
	if totalMetric == nil {
		t.Error("membership.lookup.total metric not found")
	}
}

// TestMiddleware_ErrorPath verifies a failed lookup records error telemetry.
func TestMiddleware_ErrorPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := NewMetrics(mp.Meter("test"))

	mw := NewMiddleware(tracer, metrics, NoopLogger())

	meta := LookupMeta{Component: "resolver", Operation: "raw_groups"}
	testErr := errors.New("store unavailable")

	innerFunc := func(ctx context.Context) (any, error) {
		return nil, testErr
	}

	wrapped := mw.Wrap(meta, innerFunc)
	_, err := wrapped(context.Background())

	// Verify error returned
	if err != testErr {
		t.Errorf("expected error %v, got %v", testErr, err)
	}

	// Verify span has error status
	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	// Check membership.error attribute
	var lookupError bool
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "membership.error" {
			lookupError = attr.Value.AsBool()
		}
	}
	if !lookupError {
		t.Error("expected membership.error=true on failed lookup")
	}

	// Verify error metric incremented
	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	errMetric := findMetric(rm, "membership.lookup.errors")
	if errMetric == nil {
		t.Error("membership.lookup.errors metric not found")
	} else {
		sum, ok := errMetric.Data.(metricdata.Sum[int64])
		if ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 1 {
			t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
		}
	}
}

// TestMiddleware_PropagatesContext verifies context is passed through.
func TestMiddleware_PropagatesContext(t *testing.T) {
	mw := NoopMiddleware()

	meta := LookupMeta{Component: "resolver", Operation: "consumer_groups"}

	type ctxKey string
	testKey := ctxKey("test")
	testValue := "test_value"

	var receivedValue any

	innerFunc := func(ctx context.Context) (any, error) {
		receivedValue = ctx.Value(testKey)
		return nil, nil
	}

	wrapped := mw.Wrap(meta, innerFunc)
	ctx := context.WithValue(context.Background(), testKey, testValue)
	if _, err := wrapped(ctx); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	if receivedValue != testValue {
		t.Errorf("expected context value %q, got %v", testValue, receivedValue)
	}
}

// TestMiddleware_ReturnsOriginalResult verifies the exact result is returned.
func TestMiddleware_ReturnsOriginalResult(t *testing.T) {
	mw := NoopMiddleware()

	meta := LookupMeta{Component: "resolver", Operation: "consumer_groups"}

	type assignmentsResult struct {
		Groups []string
	}

	expectedResult := &assignmentsResult{
		Groups: []string{"admins", "readers"},
	}

	innerFunc := func(ctx context.Context) (any, error) {
		return expectedResult, nil
	}

	wrapped := mw.Wrap(meta, innerFunc)
	result, err := wrapped(context.Background())
	if err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	// Verify exact same pointer is returned
	if result != expectedResult {
		t.Error("middleware did not return exact same result object")
	}

	// Also verify deep equality
	if !reflect.DeepEqual(result, expectedResult) {
		t.Errorf("result mismatch: got %v, want %v", result, expectedResult)
	}
}

// TestMiddleware_MeasuresDuration verifies duration is recorded.
func TestMiddleware_MeasuresDuration(t *testing.T) {
	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := NewMetrics(mp.Meter("test"))

	mw := NewMiddleware(NewNoopTracer(), metrics, NoopLogger())

	meta := LookupMeta{Component: "resolver", Operation: "raw_groups"}
	sleepDuration := 10 * time.Millisecond

	innerFunc := func(ctx context.Context) (any, error) {
		time.Sleep(sleepDuration)
		return nil, nil
	}

	wrapped := mw.Wrap(meta, innerFunc)
	if _, err := wrapped(context.Background()); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	durMetric := findMetric(rm, "membership.lookup.duration_ms")
	if durMetric == nil {
		t.Fatal("membership.lookup.duration_ms metric not found")
	}

	hist, ok := durMetric.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", durMetric.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no histogram data points")
	}
	if hist.DataPoints[0].Sum < float64(sleepDuration.Milliseconds()) {
		t.Errorf("expected recorded duration >= %v ms, got %v ms",
			sleepDuration.Milliseconds(), hist.DataPoints[0].Sum)
	}
}

// TestMiddlewareFromObserver verifies construction from an Observer.
func TestMiddlewareFromObserver(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
	}
	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}

	meta := LookupMeta{Component: "checker", Operation: "in_groups"}
	wrapped := mw.Wrap(meta, func(ctx context.Context) (any, error) {
		return true, nil
	})

	result, err := wrapped(context.Background())
	if err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}
	if result != true {
		t.Errorf("expected true, got %v", result)
	}
}
