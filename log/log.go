// Package log provides logging utilities for shadergraph tools.
//
// The core graph and backend packages never log; advisory compile
// diagnostics are data on the pass result. This package serves the CLI
// and the permutation driver.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Default borrows logging utilities from zap. Replace it with any other
// sugared logger if the host application has its own logging stack.
var Default = zap.New(
	zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		zapLevel,
	),
	zap.AddCaller(),
	zap.AddCallerSkip(1),
).Sugar()

// SetLevel adjusts the logging level. Accepted values are "debug",
// "info", "warn" and "error".
func SetLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log: invalid level %q: %w", level, err)
	}
	zapLevel.SetLevel(parsed)
	return nil
}

// Debugf logs a debug message through the default logger.
func Debugf(format string, args ...any) {
	Default.Debugf(format, args...)
}

// Infof logs an info message through the default logger.
func Infof(format string, args ...any) {
	Default.Infof(format, args...)
}

// Warnf logs a warning message through the default logger.
func Warnf(format string, args ...any) {
	Default.Warnf(format, args...)
}

// Errorf logs an error message through the default logger.
func Errorf(format string, args ...any) {
	Default.Errorf(format, args...)
}
