// Package observability provides opt-in instrumentation for expression
// parsing and evaluation: structured logging via slog, metrics and tracing
// via OpenTelemetry. Every feature has a no-op implementation for when it
// is disabled, and all helpers are nil-logger safe.
package observability

import (
	"log/slog"
	"time"
)

// LogParse logs a successful expression parse.
func LogParse(logger *slog.Logger, source string, atoms int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression parsed",
		slog.String("source", source),
		slog.Int("atoms", atoms),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogParseError logs a parse failure.
func LogParseError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expression parse failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// LogEval logs an evaluation result.
func LogEval(logger *slog.Logger, source string, matched bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("source", source),
		slog.Bool("matched", matched),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvalError logs an evaluation failure.
func LogEvalError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expression evaluation failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
