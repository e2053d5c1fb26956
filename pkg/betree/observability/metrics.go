package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records expression metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEval records one evaluation with its duration, outcome and
	// error status.
	RecordEval(ctx context.Context, duration time.Duration, matched bool, err error)

	// RecordParse records one parse attempt.
	RecordParse(ctx context.Context, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evals       metric.Int64Counter
	evalLatency metric.Float64Histogram
	evalErrors  metric.Int64Counter
	parses      metric.Int64Counter
	parseErrors metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("betree")

	evals, err := meter.Int64Counter("betree.eval.count",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("betree.eval.latency_ms",
		metric.WithDescription("Expression evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("betree.eval.errors",
		metric.WithDescription("Number of evaluation errors"),
	)
	if err != nil {
		return nil, err
	}

	parses, err := meter.Int64Counter("betree.parse.count",
		metric.WithDescription("Number of expression parses"),
	)
	if err != nil {
		return nil, err
	}

	parseErrors, err := meter.Int64Counter("betree.parse.errors",
		metric.WithDescription("Number of parse errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evals:       evals,
		evalLatency: evalLatency,
		evalErrors:  evalErrors,
		parses:      parses,
		parseErrors: parseErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. Configure the provider before calling this function. If
// instrument creation fails, a NoopMetrics is returned instead.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordEval implements MetricsRecorder.
func (m *otelMetrics) RecordEval(ctx context.Context, duration time.Duration, matched bool, err error) {
	m.evals.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("matched", matched),
	))
	m.evalLatency.Record(ctx, float64(duration.Microseconds())/1000.0)
	if err != nil {
		m.evalErrors.Add(ctx, 1)
	}
}

// RecordParse implements MetricsRecorder.
func (m *otelMetrics) RecordParse(ctx context.Context, duration time.Duration, err error) {
	m.parses.Add(ctx, 1)
	if err != nil {
		m.parseErrors.Add(ctx, 1)
	}
}
