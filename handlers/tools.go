// Package handlers supplies the operations this template exposes: the
// add-numbers tool, two prompt generators, the static usage-guide resource,
// and operation introspection. Handlers are pure functions of their validated
// parameters and share no mutable state with each other.
package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/util/schema"
)

// addNumbersArgs are the parameters for the add-numbers tool.
type addNumbersArgs struct {
	A float64 `json:"a" description:"First number to add"`
	B float64 `json:"b" description:"Second number to add"`
}

// AddNumbers returns the descriptor for the add-numbers tool. The result is
// the arithmetic sum of the two operands, rendered as text.
func AddNumbers() server.Descriptor {
	return server.Descriptor{
		Name:        "add-numbers",
		Kind:        server.KindTool,
		Description: "Add two numbers together",
		Schema:      schema.FromStruct(addNumbersArgs{}),
		Handler:     addNumbers,
	}
}

func addNumbers(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
	args, err := schema.Bind[addNumbersArgs](params)
	if err != nil {
		return nil, err
	}
	sum := args.A + args.B
	text := fmt.Sprintf("The sum of %s and %s is %s",
		formatNumber(args.A), formatNumber(args.B), formatNumber(sum))
	return []protocol.Content{protocol.NewTextContent(text)}, nil
}

// formatNumber renders a float without a trailing ".0" for integral values,
// so 2 stays "2" rather than "2.000000".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
