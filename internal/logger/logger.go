// Package logger provides the shared zap logger for the CLI.
//
// User-facing output goes to stdout via the handlers; this logger carries
// diagnostic detail on stderr and stays at warn level unless --verbose is
// set.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.SugaredLogger

	level = zap.NewAtomicLevelAt(zap.WarnLevel)
)

func init() {
	global = New(level)
}

// New creates a console-format sugared logger writing to stderr.
func New(enab zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if enab == nil {
		enab = level
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), enab)
	return zap.New(core, options...).Sugar()
}

// L returns the global logger.
func L() *zap.SugaredLogger {
	return global
}

// SetVerbose switches the global level between debug and warn.
func SetVerbose(verbose bool) {
	if verbose {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.WarnLevel)
	}
}

// Level returns the current global log level.
func Level() zapcore.Level {
	return level.Level()
}
