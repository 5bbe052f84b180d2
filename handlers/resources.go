package handlers

import (
	"context"
	"os"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/util/schema"
)

// usageGuideText is the fixed in-memory content served when no override file
// is configured or the override cannot be read.
const usageGuideText = `mcp-template usage

This server exposes operations over newline-delimited JSON on stdin/stdout.
Send one request per line: {"id": "<correlation id>", "op": "<name>", "params": {...}}
Each request receives exactly one response carrying the same id.

Available operations can be listed with the list-operations tool.
`

// UsageGuide returns the descriptor for the usage-guide resource. Content is
// fixed in-memory text; when overridePath is non-empty the content is read
// from that file instead, falling back to the embedded text with a fallback
// annotation if the read fails.
func UsageGuide(overridePath string) server.Descriptor {
	return server.Descriptor{
		Name:        "usage-guide",
		Kind:        server.KindResource,
		Description: "Usage documentation for this server",
		Schema:      schema.Schema{},
		Handler:     usageGuide(overridePath),
	}
}

func usageGuide(overridePath string) server.HandlerFunc {
	return func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
		text := usageGuideText
		loadFailed := false
		if overridePath != "" {
			data, err := os.ReadFile(overridePath)
			if err != nil {
				loadFailed = true
			} else {
				text = string(data)
			}
		}

		content := []protocol.Content{protocol.NewTextContent(text)}
		if loadFailed {
			content = append(content, protocol.NewDataContent(map[string]interface{}{
				"fallback": true,
				"reason":   "configured resource file could not be loaded",
			}))
		}
		return content, nil
	}
}
