// Package server implements the request-dispatch runtime: it receives
// decoded requests from a transport, looks up handlers in a registry,
// validates parameters, invokes handlers, and writes correlated responses
// back through the transport.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/d-gangz/mcp-template/logx"
	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/types"
	"github.com/d-gangz/mcp-template/util/validator"
)

// Dispatcher is the core runtime loop. The registry it holds is treated as
// read-only; the dispatcher itself never consults configuration or
// credentials.
type Dispatcher struct {
	registry  *Registry
	transport types.Transport
	logger    types.Logger

	// In-flight correlation ids, keyed by the formatted id. A request whose
	// id matches one still in flight is rejected rather than dispatched.
	inflight   map[string]context.CancelFunc
	inflightMu sync.Mutex

	wg sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger provides an option to set a custom logger.
func WithLogger(logger types.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher over the given registry and transport.
func NewDispatcher(registry *Registry, transport types.Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:  registry,
		transport: transport,
		logger:    logx.NewDefaultLogger(),
		inflight:  make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run consumes the transport's receive sequence until the stream closes or
// the context is cancelled. Each request is dispatched on its own goroutine
// so a slow handler never blocks the receive loop; Run drains in-flight
// requests before returning on clean shutdown.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.wg.Wait()

	for {
		raw, err := d.transport.ReceiveWithContext(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.logger.Info("input stream closed, draining in-flight requests")
				return nil
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				d.logger.Info("receive cancelled, shutting down")
				return nil
			}
			return fmt.Errorf("error receiving message: %w", err)
		}

		var req protocol.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			d.logger.Warn("failed to parse request structure: %v", err)
			d.send(protocol.NewErrorResponse(nil, protocol.KindInvalidRequest,
				fmt.Sprintf("failed to parse request: %v", err), nil))
			continue
		}
		if req.Op == "" {
			d.send(protocol.NewErrorResponse(req.ID, protocol.KindInvalidRequest,
				"request is missing an operation name", nil))
			continue
		}

		key := fmt.Sprintf("%v", req.ID)
		reqCtx, cancel := context.WithCancel(ctx)

		d.inflightMu.Lock()
		if _, dup := d.inflight[key]; dup {
			d.inflightMu.Unlock()
			cancel()
			d.logger.Warn("rejecting request with duplicate in-flight id %v for op %s", req.ID, req.Op)
			d.send(protocol.NewErrorResponse(req.ID, protocol.KindDuplicateRequest,
				fmt.Sprintf("a request with id %v is already in flight", req.ID), nil))
			continue
		}
		d.inflight[key] = cancel
		d.inflightMu.Unlock()

		d.wg.Add(1)
		go d.dispatch(reqCtx, req, key, cancel)
	}
}

// dispatch drives one request through its lifecycle: registry lookup,
// validation, handler execution, and response delivery. Exactly one response
// is sent per request; errors never escape to crash the loop.
func (d *Dispatcher) dispatch(ctx context.Context, req protocol.Request, key string, cancel context.CancelFunc) {
	defer func() {
		d.inflightMu.Lock()
		delete(d.inflight, key)
		d.inflightMu.Unlock()
		cancel()
		d.wg.Done()
	}()

	d.logger.Debug("dispatching op %s (id=%v)", req.Op, req.ID)

	desc, err := d.registry.Lookup(req.Op)
	if err != nil {
		d.send(responseForError(req.ID, err))
		return
	}

	params, err := protocol.UnmarshalParams(req.Params)
	if err != nil {
		d.send(protocol.NewErrorResponse(req.ID, protocol.KindInvalidRequest,
			fmt.Sprintf("invalid params payload: %v", err), nil))
		return
	}

	if err := validator.Validate(desc.Schema, params); err != nil {
		d.send(responseForError(req.ID, err))
		return
	}

	content, err := d.invoke(ctx, desc, params)
	if err != nil {
		d.send(responseForError(req.ID, &protocol.HandlerError{Op: req.Op, Err: err}))
		return
	}
	d.send(protocol.NewSuccessResponse(req.ID, content))
}

// invoke calls the handler with validated parameters, converting panics into
// errors so a misbehaving handler is reported to the caller instead of taking
// down the process.
func (d *Dispatcher) invoke(ctx context.Context, desc Descriptor, params map[string]interface{}) (content []protocol.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler for %s panicked: %v", desc.Name, r)
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return desc.Handler(ctx, params)
}

// send marshals and writes one response. Delivery failures are logged; the
// loop keeps running.
func (d *Dispatcher) send(resp *protocol.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		d.logger.Error("failed to marshal response for id %v: %v", resp.ID, err)
		return
	}
	if err := d.transport.Send(data); err != nil {
		d.logger.Error("failed to send response for id %v: %v", resp.ID, err)
	}
}
