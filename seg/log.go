// Package seg provides a leveled logging system for the seggo toolkit.
// It supports structured logging with key-value pairs and can be extended
// with custom logger implementations.
package seg

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// LogLevel represents the severity level of a log message.
// Higher values indicate more verbose logging.
type LogLevel int

const (
	// LogLevelOff disables all logging
	LogLevelOff LogLevel = iota
	// LogLevelError enables only error messages
	LogLevelError
	// LogLevelWarn enables error and warning messages
	LogLevelWarn
	// LogLevelInfo enables error, warning, and info messages
	LogLevelInfo
	// LogLevelDebug enables all messages including debug
	LogLevelDebug
)

// Logger defines the interface for logging operations.
// Implementations must support multiple severity levels and
// structured logging with key-value pairs.
type Logger interface {
	// Debug logs a message at debug level with optional key-value pairs
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at info level with optional key-value pairs
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at warning level with optional key-value pairs
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at error level with optional key-value pairs
	Error(msg string, keysAndValues ...any)
	// SetLevel changes the current logging level
	SetLevel(level LogLevel)
}

// DefaultLogger implements the Logger interface on top of charmbracelet/log,
// writing structured key-value records with timestamps to os.Stderr.
type DefaultLogger struct {
	logger *charmlog.Logger
}

// NewLogger creates a new DefaultLogger instance with the specified log level.
func NewLogger(level LogLevel) Logger {
	return newLogger(os.Stderr, level)
}

// newLogger builds a DefaultLogger writing to w. Tests use it to capture
// output.
func newLogger(w io.Writer, level LogLevel) *DefaultLogger {
	l := &DefaultLogger{
		logger: charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
		}),
	}
	l.SetLevel(level)
	return l
}

// SetLevel updates the logging level of the DefaultLogger.
// Messages below this level will not be logged.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.logger.SetLevel(charmLevel(level))
}

// charmLevel maps a LogLevel onto the backend's levels. LogLevelOff maps
// above Fatal so nothing is emitted.
func charmLevel(level LogLevel) charmlog.Level {
	switch level {
	case LogLevelDebug:
		return charmlog.DebugLevel
	case LogLevelInfo:
		return charmlog.InfoLevel
	case LogLevelWarn:
		return charmlog.WarnLevel
	case LogLevelError:
		return charmlog.ErrorLevel
	default:
		return charmlog.FatalLevel + 1
	}
}

// Debug logs a message at debug level. This level should be used for
// detailed information needed for debugging purposes.
func (l *DefaultLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs a message at info level. This level should be used for
// general operational information.
func (l *DefaultLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a message at warning level. This level should be used for
// potentially harmful situations that don't prevent normal operation.
func (l *DefaultLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs a message at error level. This level should be used for
// error conditions that affect normal operation.
func (l *DefaultLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

// String returns the string representation of a LogLevel.
// This is used for formatting log messages and configuration.
func (l LogLevel) String() string {
	return [...]string{"OFF", "ERROR", "WARN", "INFO", "DEBUG"}[l]
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It allows LogLevel to be configured from string values in configuration
// files or environment variables.
func (l *LogLevel) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "OFF":
		*l = LogLevelOff
	case "ERROR":
		*l = LogLevelError
	case "WARN":
		*l = LogLevelWarn
	case "INFO":
		*l = LogLevelInfo
	case "DEBUG":
		*l = LogLevelDebug
	default:
		return fmt.Errorf("invalid log level: %s", string(text))
	}
	return nil
}

// GlobalLogger is the package-level logger instance used by default.
// It can be accessed and modified by other packages using seggo.
var GlobalLogger Logger

// init initializes the global logger with a default configuration.
// By default, it logs at INFO level to os.Stderr.
func init() {
	GlobalLogger = NewLogger(LogLevelInfo)
}

// SetGlobalLogLevel sets the log level for the global logger instance.
// This function provides a convenient way to control logging verbosity
// across the entire application.
func SetGlobalLogLevel(level LogLevel) {
	GlobalLogger.SetLevel(level)
}
