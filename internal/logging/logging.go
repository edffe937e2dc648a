// Package logging wires the logr API used throughout the engine to a zap
// backend. Verbosity levels follow the usual logr convention: 0 is always-on
// operational logging, DEBUG and TRACE gate progressively chattier output.
package logging

import (
	"context"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger constructs a production logger. The verbosity is read from the
// SPORES_LOG_LEVEL environment variable (info, debug, trace); unknown or
// empty values mean info.
func NewLogger() logr.Logger {
	return NewLoggerAt(levelFromEnv())
}

// NewLoggerAt constructs a JSON logger that emits logr verbosity up to and
// including v.
func NewLoggerAt(v int) logr.Logger {
	cfg := zap.NewProductionConfig()
	// zapr maps logr V-levels onto negative zap levels.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-v))
	z, err := cfg.Build()
	if err != nil {
		// The production config only fails on invalid output paths, which
		// cannot happen with the defaults.
		panic(err)
	}
	return zapr.NewLogger(z)
}

// NewTestLogger constructs a console logger at TRACE verbosity for use in
// test suites.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	z, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return zapr.NewLogger(z)
}

// FromContext returns the logger stored in ctx, or a discarding logger when
// none is present. Library code never fails for lack of a logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// IntoContext returns a copy of ctx carrying the given logger.
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

func levelFromEnv() int {
	switch strings.ToLower(os.Getenv("SPORES_LOG_LEVEL")) {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	default:
		return INFO
	}
}
