package handlers

import (
	"context"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/util/schema"
)

// operationInfo is the wire shape of one entry in the list-operations result.
type operationInfo struct {
	Name        string        `json:"name"`
	Kind        server.Kind   `json:"kind"`
	Description string        `json:"description,omitempty"`
	Schema      schema.Schema `json:"inputSchema"`
}

// ListOperations returns the descriptor for the list-operations tool, which
// reports every operation registered in reg (including itself) in
// registration order.
func ListOperations(reg *server.Registry) server.Descriptor {
	return server.Descriptor{
		Name:        "list-operations",
		Kind:        server.KindTool,
		Description: "List all registered operations and their schemas",
		Schema:      schema.Schema{},
		Handler: func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
			ops := reg.Operations()
			infos := make([]operationInfo, 0, len(ops))
			for _, d := range ops {
				infos = append(infos, operationInfo{
					Name:        d.Name,
					Kind:        d.Kind,
					Description: d.Description,
					Schema:      d.Schema,
				})
			}
			return []protocol.Content{protocol.NewDataContent(map[string]interface{}{
				"operations": infos,
			})}, nil
		},
	}
}
