// Package types defines core interfaces shared across the mcp-template runtime.
package types

// Logger defines the interface for diagnostic logging. Diagnostics always go
// to a channel distinct from the protocol stream (stderr in practice);
// stdout is reserved exclusively for protocol traffic.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})

	// Info logs an informational message.
	Info(msg string, args ...interface{})

	// Warn logs a warning message.
	Warn(msg string, args ...interface{})

	// Error logs an error message.
	Error(msg string, args ...interface{})
}
