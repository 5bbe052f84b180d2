// Package types defines core interfaces shared across the mcp-template runtime.
package types

import (
	"context"
)

// Transport abstracts the line-oriented message channel between the runtime
// and its caller. It has no knowledge of message semantics: each message is
// one fully-formed payload, delimited by the transport's framing.
type Transport interface {
	// Send transmits one message atomically; concurrent sends never
	// interleave. It returns an error if the message could not be written.
	Send(data []byte) error

	// Receive blocks until the next complete message is available or the
	// stream closes. Stream closure is reported as io.EOF and ends the
	// receive sequence.
	Receive() ([]byte, error)

	// ReceiveWithContext is like Receive but respects the provided context,
	// allowing cancellation while waiting for input.
	ReceiveWithContext(ctx context.Context) ([]byte, error)

	// Close terminates the transport. After Close the transport must not be
	// used.
	Close() error
}

// TransportOptions contains configuration for constructing a Transport.
type TransportOptions struct {
	// Logger receives transport-level diagnostics (malformed lines, close
	// events). Defaults to a stderr logger when nil.
	Logger Logger
}
