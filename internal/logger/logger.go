// Package logger configures the structured zap logger shared by the
// application.
package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger holds the application logger. Log is a no-op logger until Init
// succeeds.
type ZapLogger struct {
	Log *zap.Logger
}

// New returns a ZapLogger that discards everything.
func New() *ZapLogger {
	return &ZapLogger{Log: zap.NewNop()}
}

// Init replaces Log with a JSON logger at the given level writing to output,
// which is a file path or "stderr"/"stdout". Every entry carries a session
// field unique to this run.
func (l *ZapLogger) Init(level, output string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl.With(zap.String("session", uuid.NewString()))
	return nil
}
