package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/types"
	"github.com/d-gangz/mcp-template/util/schema"
)

// HandlerFunc implements an operation's behavior once its parameters have
// been validated against the operation's schema. Handlers must not share
// mutable state with each other except through the read-only Registry.
type HandlerFunc func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error)

// Kind classifies an operation for introspection.
type Kind string

// Operation kinds.
const (
	KindTool     Kind = "tool"
	KindPrompt   Kind = "prompt"
	KindResource Kind = "resource"
)

// Descriptor is the registered metadata for one operation: a unique name, a
// kind, a description, an ordered parameter schema, and the handler. Once
// registered, a descriptor is immutable for the process lifetime.
type Descriptor struct {
	Name        string
	Kind        Kind
	Description string
	Schema      schema.Schema
	Handler     HandlerFunc
}

// Registry maps operation names to descriptors. It is populated during the
// startup phase and read-only thereafter; the RWMutex keeps lookups safe even
// if a caller deviates from that discipline.
type Registry struct {
	descriptors map[string]Descriptor
	order       []string // Registration order, for stable listings
	mu          sync.RWMutex
	logger      types.Logger
}

// NewRegistry creates an empty Registry. A nil logger disables registration
// logging.
func NewRegistry(logger types.Logger) *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
		logger:      logger,
	}
}

// Register inserts a descriptor. Registering a name that is already present
// fails with *protocol.DuplicateOperationError; registration must be
// unambiguous, so callers treat this as fatal at startup.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("operation name must not be empty")
	}
	if d.Handler == nil {
		return fmt.Errorf("operation %q has no handler", d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.Name]; exists {
		return &protocol.DuplicateOperationError{Name: d.Name}
	}
	r.descriptors[d.Name] = d
	r.order = append(r.order, d.Name)

	if r.logger != nil {
		r.logger.Info("registered %s: %s - %s", d.Kind, d.Name, d.Description)
	}
	return nil
}

// Lookup returns the descriptor registered under name, or
// *protocol.UnknownOperationError if none exists.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[name]
	if !ok {
		return Descriptor{}, &protocol.UnknownOperationError{Name: name}
	}
	return d, nil
}

// Operations returns all registered descriptors in registration order.
func (r *Registry) Operations() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.descriptors[name])
	}
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}
