package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/commercekit/ucp-mcp/internal/schema"
)

type listSchemasInput struct {
	Category string `json:"category,omitempty"`
}

type getSchemaInput struct {
	Name string `json:"name" jsonschema:"required"`
}

type validateJSONInput struct {
	SchemaName string `json:"schema_name" jsonschema:"required"`
	Data       any    `json:"data" jsonschema:"required"`
}

func registerSchemaTools(srv *mcp.Server, deps ToolDependencies) error {
	srv.Tool("list_schemas").
		Description("List all UCP schemas, optionally filtered by a category substring").
		Handler(func(ctx context.Context, input listSchemasInput) (map[string]any, error) {
			entries := deps.Index.List(input.Category)
			return map[string]any{
				"schemas": entries,
				"count":   len(entries),
			}, nil
		})

	srv.Tool("get_schema").
		Description("Get a UCP schema document by its logical name").
		Handler(func(ctx context.Context, input getSchemaInput) (map[string]any, error) {
			doc, err := deps.Store.Resolve(input.Name)
			if err != nil {
				return flagged(fmt.Sprintf("Schema '%s' not found", input.Name)), nil
			}
			return map[string]any{
				"name":   doc.Name,
				"schema": doc.Value,
			}, nil
		})

	srv.Tool("validate_json").
		Description("Validate a JSON payload against a named UCP schema").
		Handler(func(ctx context.Context, input validateJSONInput) (schema.Result, error) {
			return deps.Validator.Validate(ctx, input.SchemaName, input.Data), nil
		})

	srv.Tool("get_openapi_spec").
		Description("Get the UCP OpenAPI specification").
		Handler(func(ctx context.Context, input struct{}) (any, error) {
			return resolveSpec(deps, openAPISpecName)
		})

	srv.Tool("get_openrpc_spec").
		Description("Get the UCP OpenRPC specification").
		Handler(func(ctx context.Context, input struct{}) (any, error) {
			return resolveSpec(deps, openRPCSpecName)
		})

	srv.Tool("get_discovery_profile_schema").
		Description("Get the schema merchant discovery profiles are validated against").
		Handler(func(ctx context.Context, input struct{}) (any, error) {
			return resolveSpec(deps, discoveryProfileName)
		})

	return nil
}

func resolveSpec(deps ToolDependencies, name string) (any, error) {
	doc, err := deps.Store.Resolve(name)
	if err != nil {
		return flagged(fmt.Sprintf("Schema '%s' not found", name)), nil
	}
	return doc.Value, nil
}
