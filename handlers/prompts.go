package handlers

import (
	"context"
	"fmt"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/util/schema"
)

type createGreetingArgs struct {
	Name  string  `json:"name" description:"Name of the person to greet"`
	Style *string `json:"style" description:"Greeting style: formal or casual"`
}

// CreateGreeting returns the descriptor for the create-greeting prompt
// generator: deterministic string interpolation into a fixed template, no
// external calls.
func CreateGreeting() server.Descriptor {
	return server.Descriptor{
		Name:        "create-greeting",
		Kind:        server.KindPrompt,
		Description: "Generate a customized greeting prompt",
		Schema:      schema.FromStruct(createGreetingArgs{}),
		Handler:     createGreeting,
	}
}

func createGreeting(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
	args, err := schema.Bind[createGreetingArgs](params)
	if err != nil {
		return nil, err
	}
	style := "casual"
	if args.Style != nil {
		style = *args.Style
	}

	var text string
	switch style {
	case "formal":
		text = fmt.Sprintf("Please write a formal, professional greeting addressed to %s.", args.Name)
	default:
		text = fmt.Sprintf("Please write a warm, friendly greeting for %s.", args.Name)
	}
	return []protocol.Content{protocol.NewTextContent(text)}, nil
}

type codeReviewArgs struct {
	Language string `json:"language" description:"Programming language of the code"`
	Code     string `json:"code" description:"Source code to review"`
}

// CodeReview returns the descriptor for the code-review prompt generator.
func CodeReview() server.Descriptor {
	return server.Descriptor{
		Name:        "code-review",
		Kind:        server.KindPrompt,
		Description: "Generate a code review prompt for the given source",
		Schema:      schema.FromStruct(codeReviewArgs{}),
		Handler:     codeReview,
	}
}

func codeReview(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
	args, err := schema.Bind[codeReviewArgs](params)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf(
		"Please review the following %s code for correctness, readability, and idiomatic style:\n\n```%s\n%s\n```",
		args.Language, args.Language, args.Code)
	return []protocol.Content{protocol.NewTextContent(text)}, nil
}
