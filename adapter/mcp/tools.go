// Package mcp registers the UCP schema tools, resources and prompts on an
// MCP server.
package mcp

import (
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/commercekit/ucp-mcp/internal/catalog"
	"github.com/commercekit/ucp-mcp/internal/discovery"
	"github.com/commercekit/ucp-mcp/internal/schema"
)

// Fixed spec document names, resolved verbatim under the spec root.
const (
	openAPISpecName      = "openapi.json"
	openRPCSpecName      = "openrpc.json"
	discoveryProfileName = discovery.ProfileSchemaName
	schemaResourceLimit  = 50
	jsonMimeType         = "application/json"
)

// ToolDependencies provides the components backing the MCP tools.
type ToolDependencies struct {
	Store     *schema.Store
	Index     *schema.Index
	Validator *schema.Validator
	Catalog   *catalog.Aggregator
	Discovery *discovery.Client
	Logger    *slog.Logger
}

func (d ToolDependencies) validate() error {
	if d.Store == nil {
		return errors.New("store is required")
	}
	if d.Index == nil {
		return errors.New("index is required")
	}
	if d.Validator == nil {
		return errors.New("validator is required")
	}
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	if d.Discovery == nil {
		return errors.New("discovery client is required")
	}
	return nil
}

// flagged wraps an expected failure in a normally-shaped response. Tools
// return these instead of Go errors so the caller can render every outcome
// uniformly; protocol faults are reserved for the resource boundary.
func flagged(message string) map[string]any {
	return map[string]any{"error": message}
}

// RegisterTools registers the full UCP tool vocabulary.
func RegisterTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if err := deps.validate(); err != nil {
		return err
	}

	if err := registerSchemaTools(srv, deps); err != nil {
		return err
	}
	if err := registerCommerceTools(srv, deps); err != nil {
		return err
	}

	return nil
}
