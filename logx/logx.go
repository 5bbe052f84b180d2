// Package logx provides the standard logger implementation for mcp-template.
// All output goes to stderr: stdout belongs to the protocol stream.
package logx

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/d-gangz/mcp-template/types"
)

// Level controls which messages a DefaultLogger emits.
type Level int

// Log levels, lowest to highest severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level. Unrecognized names fall back to
// LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// DefaultLogger is a leveled logger built on the standard log package.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
	mu     sync.Mutex
}

// NewDefaultLogger creates a logger writing to stderr at LevelInfo.
func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stderr, LevelInfo)
}

// NewLogger creates a logger writing to w at the given level.
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "[mcp-template] ", log.LstdFlags|log.Lmsgprefix),
		level:  level,
	}
}

// SetLevel updates the minimum level emitted.
func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *DefaultLogger) enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

// Debug logs a debug message.
func (l *DefaultLogger) Debug(msg string, args ...interface{}) {
	if l.enabled(LevelDebug) {
		l.logger.Printf("DEBUG: "+msg, args...)
	}
}

// Info logs an informational message.
func (l *DefaultLogger) Info(msg string, args ...interface{}) {
	if l.enabled(LevelInfo) {
		l.logger.Printf("INFO: "+msg, args...)
	}
}

// Warn logs a warning message.
func (l *DefaultLogger) Warn(msg string, args ...interface{}) {
	if l.enabled(LevelWarn) {
		l.logger.Printf("WARN: "+msg, args...)
	}
}

// Error logs an error message.
func (l *DefaultLogger) Error(msg string, args ...interface{}) {
	if l.enabled(LevelError) {
		l.logger.Printf("ERROR: "+msg, args...)
	}
}

// Ensure interface compliance
var _ types.Logger = (*DefaultLogger)(nil)
