package seggo

import (
	"github.com/seggo/seggo/seg"
)

// LogLevel represents the severity of a log message
type LogLevel = seg.LogLevel

// Log levels
const (
	LogLevelOff   = seg.LogLevelOff
	LogLevelError = seg.LogLevelError
	LogLevelWarn  = seg.LogLevelWarn
	LogLevelInfo  = seg.LogLevelInfo
	LogLevelDebug = seg.LogLevelDebug
)

// Logger interface for logging messages
type Logger = seg.Logger

// SetLogLevel sets the global log level for the seggo package
func SetLogLevel(level LogLevel) {
	seg.SetGlobalLogLevel(level)
}

// Debug logs a debug message
func Debug(msg string, keysAndValues ...any) {
	seg.GlobalLogger.Debug(msg, keysAndValues...)
}

// Info logs an info message
func Info(msg string, keysAndValues ...any) {
	seg.GlobalLogger.Info(msg, keysAndValues...)
}

// Warn logs a warning message
func Warn(msg string, keysAndValues ...any) {
	seg.GlobalLogger.Warn(msg, keysAndValues...)
}

// Error logs an error message
func Error(msg string, keysAndValues ...any) {
	seg.GlobalLogger.Error(msg, keysAndValues...)
}
