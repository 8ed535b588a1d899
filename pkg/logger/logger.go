// Package logger builds the structured loggers handed to every ignitedb
// subsystem. It wraps go.uber.org/zap the way the rest of the module expects:
// callers get back a *zap.SugaredLogger so call sites can use the Infow/
// Errorw/Warnw key-value style already used in internal/engine.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger tagged with the given service name.
// Production mode (the default) emits JSON to stdout/stderr; Development
// mode switches to zap's human-readable console encoder, which is more
// useful while iterating against a local data directory.
func New(service string, development bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Logger construction failing means stdout/stderr themselves are
		// unusable; fall back to zap's no-op logger rather than panicking
		// an embedding application over observability plumbing.
		log = zap.NewNop()
	}

	return log.Sugar().Named(service)
}

// Noop returns a logger that discards everything. Useful as a default for
// callers (and tests) that don't care about ignitedb's internal logging.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
