// Package protocol defines the wire structures for the mcp-template
// request/response protocol: newline-delimited JSON messages carrying a
// correlation id, an operation name, and an untyped parameter payload.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Request represents a single incoming operation invocation.
// The ID is caller-supplied and opaque (string or number); it is echoed back
// unchanged on the correlated Response.
type Request struct {
	ID     interface{}     `json:"id"`
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response correlates to exactly one Request via the same ID. It carries an
// ordered sequence of content blocks and, on failure, an IsError flag plus a
// structured error payload.
type Response struct {
	ID      interface{}   `json:"id"`
	Content []Content     `json:"content"`
	IsError bool          `json:"isError,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// Content is implemented by all response content block variants.
type Content interface {
	ContentType() string
}

// TextContent is a plain-text content block.
type TextContent struct {
	Type string `json:"type"` // Always "text"
	Text string `json:"text"`
}

// ContentType returns "text".
func (c TextContent) ContentType() string { return "text" }

// DataContent is a structured content block carrying arbitrary JSON data.
type DataContent struct {
	Type string      `json:"type"` // Always "data"
	Data interface{} `json:"data"`
}

// ContentType returns "data".
func (c DataContent) ContentType() string { return "data" }

// NewTextContent builds a text content block.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}

// NewDataContent builds a data content block.
func NewDataContent(data interface{}) DataContent {
	return DataContent{Type: "data", Data: data}
}

// ErrorPayload is the structured error carried on an error Response.
type ErrorPayload struct {
	Kind       ErrorKind   `json:"kind"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// Violation describes a single schema-validation failure for one field.
type Violation struct {
	Field    string `json:"field"`
	Expected string `json:"expected,omitempty"`
	Reason   string `json:"reason"`
}

// String renders a violation as "field: reason".
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// NewSuccessResponse creates a success Response correlated to id.
func NewSuccessResponse(id interface{}, content []Content) *Response {
	return &Response{
		ID:      id,
		Content: content,
	}
}

// NewErrorResponse creates an error Response correlated to id. The error
// message is also rendered into a text content block so callers that only
// inspect content still see the failure.
func NewErrorResponse(id interface{}, kind ErrorKind, message string, violations []Violation) *Response {
	text := message
	for _, v := range violations {
		text += "; " + v.String()
	}
	return &Response{
		ID:      id,
		Content: []Content{NewTextContent(text)},
		IsError: true,
		Error: &ErrorPayload{
			Kind:       kind,
			Message:    message,
			Violations: violations,
		},
	}
}

// UnmarshalParams decodes a raw parameter payload into a generic map.
// A nil or null payload yields an empty map, never nil.
func UnmarshalParams(raw json.RawMessage) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	if len(raw) == 0 || string(raw) == "null" {
		return params, nil
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	return params, nil
}
