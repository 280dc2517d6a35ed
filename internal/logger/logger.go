// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process logger read by every component. It is a no-op until Init succeeds.
var Log = zap.NewNop()

// Init builds a production (JSON) or development (console) logger at the given level
// and installs it as Log. On error Log is left unchanged.
//
// Parameters:
//   - level: one of debug, info, warn, error ("" means info)
//   - development: console encoding with caller and stack traces on warnings
//
// Returns:
//   - error: an unknown level or a failing sink
func Init(level string, development bool) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = l
	return nil
}
