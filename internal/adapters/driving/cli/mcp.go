package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/adapters/driving/mcp"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/services"
	"github.com/custodia-labs/eddkit/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
customers, discounts and downloads and read record fields.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead, or --http to take the first free port
from 8765 to 8784.

Tool calls are rate limited by mcp.rate_limit and mcp.burst. Edits to the
config file are applied while the server runs.

Examples:
  # Stdio mode
  eddkit mcp serve

  # HTTP mode
  eddkit mcp serve --port 8080

  # HTTP mode on a free port
  eddkit mcp serve --http`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("http", false, "serve HTTP on the first free port when --port is not set")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts maps the service set onto the MCP server ports.
func mcpPorts(s *Services) *mcp.Ports {
	return &mcp.Ports{
		Customers:  s.CustomerSearch,
		Discounts:  s.DiscountSearch,
		Downloads:  s.DownloadSearch,
		Fields:     s.Fields,
		Countries:  s.Countries,
		Currencies: s.Currencies,
	}
}

// mcpPort resolves the HTTP port to serve on. Zero means stdio.
func mcpPort(port int, useHTTP bool) (int, error) {
	if port < 0 {
		return 0, fmt.Errorf("port %d: %w", port, domain.ErrInvalidInput)
	}
	if port > 0 || !useHTTP {
		return port, nil
	}
	return services.FindAvailablePort(services.MCPPortRangeStart, services.MCPPortRangeEnd)
}

// currentSettings returns the configured settings, or the defaults when no
// settings service is set or the configuration is invalid.
func currentSettings(s *Services) domain.Settings {
	if s.Settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.Settings.Get()
	if err != nil {
		logger.Warn("Using default settings: %v", err)
		return s.Settings.GetDefaults()
	}
	return *settings
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	useHTTP, err := cmd.Flags().GetBool("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}
	port, err = mcpPort(port, useHTTP)
	if err != nil {
		return err
	}
	s, err := requireServices()
	if err != nil {
		return err
	}

	settings := currentSettings(s)
	throttle := mcp.NewThrottle(float64(settings.MCP.RateLimit), settings.MCP.Burst)

	server, err := mcp.NewServer(mcpPorts(s), mcp.WithThrottle(throttle))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if s.Watcher != nil {
		go watchSettings(ctx, s, throttle)
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// watchSettings applies config file edits to the running server.
func watchSettings(ctx context.Context, s *Services, throttle *mcp.Throttle) {
	err := s.Watcher.Watch(ctx, func() {
		settings := currentSettings(s)
		throttle.SetLimit(float64(settings.MCP.RateLimit), settings.MCP.Burst)
		s.ApplySearchSettings(settings.Search)
		logger.Info("Reloaded settings: rate limit %d/s, page size %d", settings.MCP.RateLimit, settings.Search.Number)
	})
	if err != nil {
		logger.Warn("Config watch stopped: %v", err)
	}
}
