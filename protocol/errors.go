package protocol

import (
	"fmt"
	"strings"
)

// ErrorKind identifies an error category on the wire.
type ErrorKind string

// Error kinds. duplicate_operation is startup-only and fatal; the rest are
// per-request and recoverable.
const (
	KindDuplicateOperation ErrorKind = "duplicate_operation"
	KindUnknownOperation   ErrorKind = "unknown_operation"
	KindValidationError    ErrorKind = "validation_error"
	KindHandlerError       ErrorKind = "handler_error"
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindDuplicateRequest   ErrorKind = "duplicate_request"
)

// DuplicateOperationError reports an attempt to register an operation name
// that is already present. Registration must be unambiguous, so this is fatal
// at startup.
type DuplicateOperationError struct {
	Name string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("operation %q is already registered", e.Name)
}

// UnknownOperationError reports a request naming an operation that is not in
// the registry.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// ValidationError reports schema validation failure. It carries the complete
// violation list, not just the first, so callers can report all problems at
// once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid params: " + strings.Join(parts, "; ")
}

// HandlerError wraps a failure raised by a handler during execution. It is
// caught at the dispatch boundary and reported as an error Response.
type HandlerError struct {
	Op  string
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("operation %q failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying handler failure.
func (e *HandlerError) Unwrap() error { return e.Err }
