// Package cli provides the ucp-mcp command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpinternal "github.com/commercekit/ucp-mcp/internal/mcp"
	"github.com/commercekit/ucp-mcp/pkg/config"
	"github.com/commercekit/ucp-mcp/pkg/observability"
)

var rootCmd = &cobra.Command{
	Use:   "ucp-mcp",
	Short: "UCP schema server for the Model Context Protocol",
	Long: `ucp-mcp exposes the Universal Commerce Protocol schema catalog,
API specifications and validation utilities to agents over MCP.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := observability.LoggerFromEnv()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		deps := mcpinternal.NewDependencies(cfg, logger, observability.NewInMemoryMetrics())
		if err := mcpinternal.Serve(ctx, cfg, deps, logger); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(mcpinternal.Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
