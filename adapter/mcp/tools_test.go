package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/ucp-mcp/internal/catalog"
	"github.com/commercekit/ucp-mcp/internal/discovery"
	"github.com/commercekit/ucp-mcp/internal/schema"
	"github.com/commercekit/ucp-mcp/pkg/observability"
)

func newTestDeps(t *testing.T) ToolDependencies {
	t.Helper()

	schemaRoot := t.TempDir()
	path := filepath.Join(schemaRoot, "shopping", "checkout_req.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Checkout Request"}`), 0o644))

	return newTestDepsWithRoot(t, schemaRoot)
}

func newTestDepsWithRoot(t *testing.T, schemaRoot string) ToolDependencies {
	t.Helper()

	store := schema.NewStore(schemaRoot, t.TempDir(), t.TempDir())
	index := schema.NewIndex(schemaRoot)
	validator := schema.NewValidator(store, nil)

	return ToolDependencies{
		Store:     store,
		Index:     index,
		Validator: validator,
		Catalog:   catalog.NewAggregator(index, store),
		Discovery: discovery.NewClient(validator, discovery.DefaultOptions(), nil, observability.NoopMetrics{}),
	}
}

func newTestServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})
}

func TestRegisterTools_ListTools(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, RegisterTools(srv, newTestDeps(t)))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	want := map[string]bool{
		"list_schemas":                 false,
		"get_schema":                   false,
		"validate_json":                false,
		"get_openapi_spec":             false,
		"get_openrpc_spec":             false,
		"list_capabilities":            false,
		"get_discovery_profile_schema": false,
		"discover_merchant":            false,
		"generate_checkout_request":    false,
	}
	for _, tool := range tools {
		if name, ok := tool["name"].(string); ok {
			if _, expected := want[name]; expected {
				want[name] = true
			}
		}
	}
	for name, found := range want {
		assert.True(t, found, "tool %s should be registered", name)
	}
}

func TestRegisterTools_MissingDependencies(t *testing.T) {
	srv := newTestServer()

	err := RegisterTools(srv, ToolDependencies{})
	require.Error(t, err)

	err = RegisterTools(nil, newTestDeps(t))
	require.Error(t, err)
}

func TestRegisterResources(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, RegisterResources(srv, newTestDeps(t)))
}

func TestResources_ReadSchemaMatchesStore(t *testing.T) {
	deps := newTestDeps(t)
	srv := newTestServer()
	require.NoError(t, RegisterResources(srv, deps))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	text, err := tc.ReadResource("ucp://schema/shopping/checkout_req")
	require.NoError(t, err)
	require.NotEmpty(t, text)

	doc, err := deps.Store.Resolve("shopping/checkout_req")
	require.NoError(t, err)

	assert.JSONEq(t, string(doc.Raw), text)
}

func TestResources_ReadPastListingCap(t *testing.T) {
	schemaRoot := t.TempDir()
	for i := 1; i <= 60; i++ {
		path := filepath.Join(schemaRoot, fmt.Sprintf("s%03d.json", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`{"title":"Schema %d"}`, i)), 0o644))
	}
	deps := newTestDepsWithRoot(t, schemaRoot)

	srv := newTestServer()
	require.NoError(t, RegisterResources(srv, deps))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	// Only the first 50 entries get concrete resources, but a direct read
	// of any resolvable schema must still succeed.
	text, err := tc.ReadResource("ucp://schema/s060")
	require.NoError(t, err)
	require.NotEmpty(t, text)

	assert.JSONEq(t, `{"title":"Schema 60"}`, text)
}

func TestResources_UnknownURIIsAFault(t *testing.T) {
	deps := newTestDeps(t)
	srv := newTestServer()
	require.NoError(t, RegisterResources(srv, deps))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	_, err := tc.ReadResource("ucp://unknown/nothing")
	require.Error(t, err)

	// A schema URI that resolves to no document is equally a fault, not a
	// flagged result.
	_, err = tc.ReadResource("ucp://schema/no_such_schema")
	require.Error(t, err)
}

func TestRegisterPrompts(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, RegisterPrompts(srv, newTestDeps(t)))
}
