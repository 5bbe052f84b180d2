package server

import (
	"context"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/d-gangz/mcp-template/transport/stdio"
	"github.com/d-gangz/mcp-template/types"
)

// ServeStdio runs the dispatcher over standard input/output, blocking until
// the input stream closes or the process receives an interrupt. Readiness and
// shutdown are logged to the diagnostic channel; stdout carries only protocol
// traffic.
func ServeStdio(registry *Registry, logger types.Logger) error {
	transport := stdio.NewTransportWithOptions(types.TransportOptions{Logger: logger})
	defer transport.Close()

	sessionID := uuid.NewString()
	logger.Info("session %s: listening on stdio with %d operations", sessionID, registry.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dispatcher := NewDispatcher(registry, transport, WithLogger(logger))
	err := dispatcher.Run(ctx)
	if err != nil {
		logger.Error("session %s: dispatcher exited with error: %v", sessionID, err)
		return err
	}
	logger.Info("session %s: shut down cleanly", sessionID)
	return nil
}
