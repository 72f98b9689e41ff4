// Package logging wraps zap with the handful of events this tool emits.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kvit-s/v4apply/internal/patch"
)

// Logger provides structured logging for patch operations.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger that appends JSON records to a file.
// If logPath is empty, logging is disabled.
// If development is true, uses the development encoder config.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// PatchParsed logs a successfully resolved patch.
func (l *Logger) PatchParsed(files int, fuzz patch.Fuzz) {
	l.zap.Info("patch parsed",
		zap.Int("files", files),
		zap.String("fuzz", fuzz.String()),
	)
}

// PatchFailed logs a parse or resolution failure.
func (l *Logger) PatchFailed(err error) {
	kind := "format"
	if patch.IsContextError(err) {
		kind = "context"
	}
	l.zap.Warn("patch failed",
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// CommitApplied logs the result of writing a commit to the workspace.
func (l *Logger) CommitApplied(added, updated, deleted int, err error) {
	if err != nil {
		l.zap.Error("commit apply failed",
			zap.Int("added", added),
			zap.Int("updated", updated),
			zap.Int("deleted", deleted),
			zap.Error(err),
		)
		return
	}
	l.zap.Info("commit applied",
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
	)
}
