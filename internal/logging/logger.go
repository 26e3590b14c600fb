// Package logging hides the concrete logging library behind a small structured
// logging interface so components can be handed a logger and tests can capture
// what was logged.
package logging

import "github.com/sirupsen/logrus"

// Logger is the structured logger used by every component of the reconciler.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a derived logger carrying the error
	WithError(err error) Logger

	// WithFields returns a derived logger carrying the given fields
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// defaultLogger writes through the logrus standard logger, so a level set on
// it at startup applies before the container takes over.
var defaultLogger = NewLogrusAdapterFromLogger(logrus.StandardLogger())

// GetLogger returns the process-wide logger used before a container is built.
func GetLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger. Nil is ignored.
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
