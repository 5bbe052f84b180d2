// Package stdio provides a Transport implementation that uses standard
// input/output. Messages are newline-delimited JSON, one message per line.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/d-gangz/mcp-template/logx"
	"github.com/d-gangz/mcp-template/types"
)

// Transport implements types.Transport over a reader/writer pair, by default
// stdin and stdout. It has no knowledge of message semantics: it frames by
// newline and requires each line to be valid JSON.
type Transport struct {
	reader     io.Reader
	byteReader io.ByteReader // Buffered view of reader, created once so no bytes are lost between calls
	writer     io.Writer
	writeMutex sync.Mutex
	logger     types.Logger
	closed     bool
	closeMutex sync.Mutex
}

// NewTransport creates a Transport over os.Stdin/os.Stdout with default
// options.
func NewTransport() *Transport {
	return NewTransportWithOptions(types.TransportOptions{})
}

// NewTransportWithOptions creates a Transport over os.Stdin/os.Stdout with
// the specified options.
func NewTransportWithOptions(opts types.TransportOptions) *Transport {
	return NewTransportWithReadWriter(os.Stdin, os.Stdout, opts)
}

// NewTransportWithReadWriter creates a Transport using the provided
// reader/writer. Used directly in tests with in-memory pipes.
func NewTransportWithReadWriter(reader io.Reader, writer io.Writer, opts types.TransportOptions) *Transport {
	logger := opts.Logger
	if logger == nil {
		logger = logx.NewDefaultLogger()
	}
	byteReader, ok := reader.(io.ByteReader)
	if !ok {
		byteReader = bufio.NewReader(reader)
	}
	return &Transport{
		reader:     reader,
		byteReader: byteReader,
		writer:     writer,
		logger:     logger,
	}
}

// Send writes one message to the underlying writer, ensuring it ends with
// exactly one newline. Concurrent sends are serialized by a mutex so whole
// lines never interleave.
func (t *Transport) Send(data []byte) error {
	t.closeMutex.Lock()
	if t.closed {
		t.closeMutex.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.closeMutex.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("cannot send empty message")
	}

	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()

	data = bytes.TrimRight(data, "\n")
	data = append(data, '\n')

	t.logger.Debug("stdio send: %s", string(data))

	if _, err := t.writer.Write(data); err != nil {
		if errors.Is(err, io.ErrClosedPipe) || strings.Contains(err.Error(), "pipe closed") {
			t.logger.Warn("stdio: write to closed pipe: %v", err)
			_ = t.Close()
			return err
		}
		t.logger.Error("stdio: failed to write message: %v", err)
		return fmt.Errorf("failed to write message: %w", err)
	}

	if flusher, ok := t.writer.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			t.logger.Warn("stdio: failed to flush writer: %v", err)
		}
	}
	return nil
}

// Receive reads the next newline-delimited JSON message, blocking until a
// complete line is available or the stream closes.
func (t *Transport) Receive() ([]byte, error) {
	return t.ReceiveWithContext(context.Background())
}

// ReceiveWithContext reads the next message with context support. Lines that
// are not valid JSON are logged and skipped in place rather than surfaced as
// errors: a single bad line must not take down the process. Stream closure is
// reported as io.EOF.
func (t *Transport) ReceiveWithContext(ctx context.Context) ([]byte, error) {
	t.closeMutex.Lock()
	if t.closed {
		t.closeMutex.Unlock()
		return nil, fmt.Errorf("transport is closed")
	}
	t.closeMutex.Unlock()

	type result struct {
		data []byte
		err  error
	}
	resultChan := make(chan result, 1)

	go func() {
		var lineBuffer bytes.Buffer
		for {
			b, err := t.byteReader.ReadByte() // Blocking call
			if err != nil {
				if err == io.EOF {
					if line := bytes.TrimSpace(lineBuffer.Bytes()); len(line) > 0 && json.Valid(line) {
						// Final line without trailing newline.
						resultChan <- result{data: line}
					} else {
						resultChan <- result{err: io.EOF}
					}
				} else {
					t.logger.Error("stdio: error reading byte: %v", err)
					resultChan <- result{err: fmt.Errorf("failed to read message line: %w", err)}
				}
				return
			}

			if b != '\n' {
				lineBuffer.WriteByte(b)
				continue
			}

			line := bytes.TrimSpace(lineBuffer.Bytes())
			lineBuffer.Reset()
			if len(line) == 0 {
				continue // Blank line between messages
			}
			if !json.Valid(line) {
				t.logger.Warn("stdio: skipping malformed input line: %s", string(line))
				continue
			}
			t.logger.Debug("stdio received: %s", string(line))
			out := make([]byte, len(line))
			copy(out, line)
			resultChan <- result{data: out}
			return
		}
	}()

	select {
	case <-ctx.Done():
		t.logger.Warn("stdio: receive context canceled: %v", ctx.Err())
		_ = t.Close()
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.data, res.err
	}
}

// Close marks the transport closed and closes the underlying streams where
// possible.
func (t *Transport) Close() error {
	t.closeMutex.Lock()
	defer t.closeMutex.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.logger.Debug("stdio: closing transport")

	var firstErr error
	if closer, ok := t.writer.(io.Closer); ok {
		if err := closer.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			firstErr = err
		}
	}
	if closer, ok := t.reader.(io.Closer); ok {
		if err := closer.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

var _ types.Transport = (*Transport)(nil)
