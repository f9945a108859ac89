// Package logx is a small structured logger with console, JSON and
// CloudWatch output. The package-level functions write through a default
// logger configured from the environment.
package logx

import (
	"context"
	"fmt"
	"io"

	"github.com/Abraxas-365/faqgen/pkg/kernel"
)

var defaultLogger = NewLogger(LoadFromEnv())

func SetDefaultLogger(logger *Logger) { defaultLogger = logger }
func GetDefaultLogger() *Logger       { return defaultLogger }
func SetLevel(level Level)            { defaultLogger.SetLevel(level) }
func SetOutput(w io.Writer)           { defaultLogger.SetOutput(w) }

// ============================================================================
// Simple Logging Functions
// ============================================================================

func Trace(msg string) { defaultLogger.log(LevelTrace, msg, nil, nil, nil) }
func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil, nil) }
func Info(msg string)  { defaultLogger.log(LevelInfo, msg, nil, nil, nil) }
func Warn(msg string)  { defaultLogger.log(LevelWarn, msg, nil, nil, nil) }
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil, nil) }

func Fatal(msg string) {
	defaultLogger.log(LevelFatal, msg, nil, nil, nil)
	defaultLogger.exit(1)
}

func Debugf(format string, args ...any) { Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Error(fmt.Sprintf(format, args...)) }

func Fatalf(format string, args ...any) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil, nil)
	defaultLogger.exit(1)
}

// ============================================================================
// Structured Logging
// ============================================================================

func WithFields(fields Fields) *Entry        { return defaultLogger.WithFields(fields) }
func WithField(key string, value any) *Entry { return defaultLogger.WithField(key, value) }
func WithError(err error) *Entry             { return defaultLogger.WithError(err) }
func WithStruct(data any) *Entry             { return defaultLogger.WithStruct(data) }

func WithContext(ctx context.Context) *Entry {
	return newEntry(defaultLogger).WithContext(ctx)
}

// ForJob returns an entry tagged with the job identifier
func ForJob(id kernel.JobID) *Entry {
	return defaultLogger.WithField("job_id", id.String())
}
