package util

import (
	"context"
	"fmt"
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the process-wide logger used by the Log* helpers.
// Calling it again replaces the previous logger, which is closed.
func InitLogger(logLevel, logFile string, format LogFormat, debugToConsole bool) error {
	logger, err := NewLogger(logLevel, logFile, format, debugToConsole)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the global logger. A nil logger silences the helpers.
func SetLogger(logger LoggerInterface) {
	loggerMu.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if previous != nil && previous != logger {
		_ = previous.Close()
	}
}

func current() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// LogInfo convenience functions for logging
func LogInfo(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	LogDebug(fmt.Sprintf(format, args...))
}

func LogWarn(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Error(msg, fields...)
	}
}

// LogWarnContext logs a warning tagged with the band and source file
// carried by ctx, see WithLogFields.
func LogWarnContext(ctx context.Context, msg string, fields ...Field) {
	if l := current(); l != nil {
		l.WithContext(ctx).Warn(msg, fields...)
	}
}

// WithLogFields stores the band and source file in ctx for
// LogWarnContext. Empty values are not stored.
func WithLogFields(ctx context.Context, band, source string) context.Context {
	if band != "" {
		ctx = context.WithValue(ctx, ContextKeyBand, band)
	}
	if source != "" {
		ctx = context.WithValue(ctx, ContextKeySource, source)
	}
	return ctx
}
