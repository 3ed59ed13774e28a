package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slidemerge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can merge
and inspect slide decks.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start a streamable HTTP server instead.

Tools:
  merge_file    merge a deck into its site, document and slide variants
  inspect_file  report the lines a merge would exclude
  similarity    score two header titles as duplicate detection does

Examples:
  # Stdio mode (default)
  slidemerge mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  slidemerge mcp serve --port 8080`,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidInput, mcpPort)
	}
	if mergeService == nil {
		return errNotConfigured("merge")
	}
	if historyService == nil {
		logger.Info("mcp: history disabled, resources will list no runs")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Merge:   mergeService,
		Inspect: inspectService,
		History: historyService,
	}, version)
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr := fmt.Sprintf(":%d", mcpPort)
	// stdout is free in HTTP mode
	cmd.Printf("MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
