package main

import (
	"fmt"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/cli"
	"github.com/aretw0/meridian/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the engine as an MCP Server so agents can navigate the world,
fetch layouts and blend climates as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")

			rt, _, logger, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			srv := mcp.NewServer(rt.Engine, meridian.Version, mcp.WithLogger(logger))

			switch transport {
			case "stdio":
				logger.Info("Starting Meridian MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				sigCtx := cli.NewSignalContext(cmd.Context())
				defer sigCtx.Cancel()
				logger.Info("Starting Meridian MCP Server (SSE)", "port", port)
				if err := srv.ServeSSE(sigCtx, port); err != nil {
					return err
				}
				logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	return cmd
}
