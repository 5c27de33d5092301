package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"
)

// Fixed resource URIs for the machine-readable specs.
const (
	openAPIResourceURI          = "ucp://spec/openapi"
	openRPCResourceURI          = "ucp://spec/openrpc"
	discoveryProfileResourceURI = "ucp://spec/discovery-profile"
	schemaResourcePrefix        = "ucp://schema/"
)

// RegisterResources exposes the spec documents and the indexed schemas as
// addressable resources. Unlike tools, a failed resource read propagates
// as a protocol fault.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if err := deps.validate(); err != nil {
		return err
	}

	registerSpecResource(srv, deps, openAPIResourceURI, "OpenAPI Specification",
		"The UCP REST API specification", openAPISpecName)
	registerSpecResource(srv, deps, openRPCResourceURI, "OpenRPC Specification",
		"The UCP RPC API specification", openRPCSpecName)
	registerSpecResource(srv, deps, discoveryProfileResourceURI, "Discovery Profile Schema",
		"The schema merchant discovery profiles are validated against", discoveryProfileName)

	// One concrete resource per indexed schema so clients can discover
	// them; the listing is capped. A read of any registered URI
	// re-resolves through the store, so late storage updates behind a
	// cached miss still surface.
	entries := deps.Index.List("")
	if len(entries) > schemaResourceLimit {
		entries = entries[:schemaResourceLimit]
	}
	for _, entry := range entries {
		name := entry.Name
		title := entry.Title
		if title == "" {
			title = name
		}
		srv.Resource(schemaResourcePrefix+name).
			Name(title).
			Description(entry.Description).
			MimeType(jsonMimeType).
			Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
				return readDocument(deps, uri, name)
			})
	}

	// Direct read-by-URI is not capped: a templated resource serves any
	// schema the store can resolve, including those past the listing cap.
	srv.Resource(schemaResourcePrefix+"{name}").
		Name("UCP Schema").
		Description("Any UCP schema document, addressed by its logical name").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			name := strings.TrimPrefix(uri, schemaResourcePrefix)
			if name == "" || name == uri {
				name = params["name"]
			}
			return readDocument(deps, uri, name)
		})

	return nil
}

func registerSpecResource(srv *mcp.Server, deps ToolDependencies, uri, name, description, docName string) {
	srv.Resource(uri).
		Name(name).
		Description(description).
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, resourceURI string, params map[string]string) (*mcp.ResourceContent, error) {
			return readDocument(deps, resourceURI, docName)
		})
}

func readDocument(deps ToolDependencies, uri, name string) (*mcp.ResourceContent, error) {
	doc, err := deps.Store.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", uri, err)
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: jsonMimeType,
		Text:     string(doc.Raw),
	}, nil
}
