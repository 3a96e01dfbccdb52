// Package logging decouples expensewise from a concrete logging framework.
// Core packages receive a Logger through their constructors; only the
// container and main decide which implementation backs it.
package logging

// Logger is the structured logger used across the client.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger carrying err on every entry.
	WithError(err error) Logger
	// WithField returns a logger carrying a single extra field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger carrying the given fields.
	WithFields(fields ...Field) Logger

	// Fatal logs and terminates the process. Only cmd/ may call it.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
