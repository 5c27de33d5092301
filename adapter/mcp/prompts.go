package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers prompts for common schema workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}

	srv.Prompt("schema_review").
		Description("Guide for exploring UCP schemas and validating a payload against them.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Schema Review Session",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me work with UCP schemas. Please:

1. List the available schemas with the list_schemas tool (use the category argument to narrow down)
2. Check the capability taxonomy with list_capabilities to see how schemas group
3. Fetch the exact schema I need with get_schema
4. Validate my payload with validate_json and walk me through each reported violation, pointing at the JSON path it refers to

If I have a merchant URL, run discover_merchant and explain whether the published profile conforms to the discovery schema. If I need a starting point for a checkout payload, build one with generate_checkout_request and adjust it to my line items.`,
						},
					},
				},
			}, nil
		})

	return nil
}
