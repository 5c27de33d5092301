// Package mcp wires the schema catalog components into a served MCP
// endpoint.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/middleware"

	mcplocal "github.com/commercekit/ucp-mcp/adapter/mcp"
	"github.com/commercekit/ucp-mcp/internal/catalog"
	"github.com/commercekit/ucp-mcp/internal/discovery"
	"github.com/commercekit/ucp-mcp/internal/schema"
	"github.com/commercekit/ucp-mcp/pkg/config"
	"github.com/commercekit/ucp-mcp/pkg/observability"
)

// Version is the server version reported in the MCP handshake.
const Version = "1.0.0"

// NewDependencies builds the schema catalog components from configuration.
func NewDependencies(cfg *config.Config, logger *slog.Logger, metrics observability.Metrics) mcplocal.ToolDependencies {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	store := schema.NewStore(cfg.SchemaRoot, cfg.SpecRoot, cfg.AlternateRoot).WithMetrics(metrics)
	index := schema.NewIndex(cfg.SchemaRoot)
	validator := schema.NewValidator(store, nil).WithMetrics(metrics)

	return mcplocal.ToolDependencies{
		Store:     store,
		Index:     index,
		Validator: validator,
		Catalog:   catalog.NewAggregator(index, store),
		Discovery: discovery.NewClient(validator, discovery.Options{
			Timeout:          cfg.DiscoveryTimeout,
			FailureThreshold: cfg.DiscoveryFailureThreshold,
		}, logger, metrics),
		Logger: logger,
	}
}

// Serve starts the MCP server and blocks until the context is canceled.
func Serve(ctx context.Context, cfg *config.Config, deps mcplocal.ToolDependencies, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := mcpgo.NewServer(mcpgo.ServerInfo{
		Name:    "ucp-mcp",
		Version: Version,
		Capabilities: mcpgo.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})

	if err := mcplocal.RegisterTools(srv, deps); err != nil {
		return err
	}

	if err := mcplocal.RegisterResources(srv, deps); err != nil {
		return err
	}

	if err := mcplocal.RegisterPrompts(srv, deps); err != nil {
		logger.Warn("failed to register MCP prompts", "error", err)
		// Continue - prompts are optional enhancements
	}

	adapter := mcpLogger{logger: logger}
	stack := middleware.DefaultStack(adapter)

	if cfg.MCPAuthToken != "" {
		authenticator := middleware.BearerTokenAuthenticator(middleware.StaticTokens(map[string]*middleware.Identity{
			cfg.MCPAuthToken: {ID: "mcp", Name: "mcp"},
		}))
		stack = append([]middleware.Middleware{middleware.Auth(authenticator, middleware.WithAuthLogger(adapter))}, stack...)
	} else {
		logger.Warn("MCP auth token not set; requests will be unauthenticated")
	}

	logger.Info("mcp server listening",
		"addr", cfg.MCPAddr,
		"schema_root", cfg.SchemaRoot,
		"spec_root", cfg.SpecRoot,
	)
	return mcpgo.ServeHTTPWithMiddleware(ctx, srv, cfg.MCPAddr, nil, mcpgo.WithMiddleware(stack...))
}

type mcpLogger struct {
	logger *slog.Logger
}

func (l mcpLogger) Info(msg string, fields ...middleware.Field) {
	l.logger.Info(msg, fieldsToArgs(fields)...)
}

func (l mcpLogger) Error(msg string, fields ...middleware.Field) {
	l.logger.Error(msg, fieldsToArgs(fields)...)
}

func (l mcpLogger) Debug(msg string, fields ...middleware.Field) {
	l.logger.Debug(msg, fieldsToArgs(fields)...)
}

func (l mcpLogger) Warn(msg string, fields ...middleware.Field) {
	l.logger.Warn(msg, fieldsToArgs(fields)...)
}

func fieldsToArgs(fields []middleware.Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return args
}
