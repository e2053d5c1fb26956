package filter

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/betree/pkg/betree/observability"
)

// Engine compiles a filter and wraps matching with optional structured
// logging, metrics and tracing. All instrumentation defaults to no-ops.
//
//	eng, err := filter.NewEngine("type == nfs & size > 100",
//	    filter.WithLogger(logger),
//	    filter.WithMetrics(observability.NewMetricsRecorder()),
//	)
type Engine struct {
	filter  *Filter
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// WithTracing attaches a span manager.
func WithTracing(spans observability.SpanManager) Option {
	return func(e *Engine) {
		if spans != nil {
			e.spans = spans
		}
	}
}

// NewEngine compiles the expression and applies the options. The compile
// itself is instrumented: parse metrics and logs are emitted through
// whatever the options configure.
func NewEngine(source string, opts ...Option) (*Engine, error) {
	e := &Engine{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}

	start := time.Now()
	f, err := Compile(source)
	e.metrics.RecordParse(context.Background(), time.Since(start), err)
	if err != nil {
		observability.LogParseError(e.logger, source, err)
		return nil, err
	}
	observability.LogParse(e.logger, source, f.Tree().Len(), float64(time.Since(start).Microseconds())/1000.0)

	e.filter = f
	return e, nil
}

// Filter returns the compiled filter.
func (e *Engine) Filter() *Filter {
	return e.filter
}

// Match evaluates the filter against one record, with tracing, metrics and
// logging around the evaluation.
func (e *Engine) Match(ctx context.Context, record map[string]any) (bool, error) {
	ctx, span := e.spans.StartEvalSpan(ctx, e.filter.Source())

	start := time.Now()
	matched, err := e.filter.Match(record)
	elapsed := time.Since(start)

	e.metrics.RecordEval(ctx, elapsed, matched, err)
	if err != nil {
		observability.LogEvalError(e.logger, e.filter.Source(), err)
	} else {
		observability.LogEval(e.logger, e.filter.Source(), matched, float64(elapsed.Microseconds())/1000.0)
	}
	e.spans.EndSpanWithError(span, err)
	return matched, err
}

// MatchAll returns the records the filter matches, in input order. The
// first evaluation error aborts.
func (e *Engine) MatchAll(ctx context.Context, records []map[string]any) ([]map[string]any, error) {
	var out []map[string]any
	for _, record := range records {
		matched, err := e.Match(ctx, record)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, record)
		}
	}
	return out, nil
}
