package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-glean/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for listing comments, logs and TODOs",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
list the annotations of this workspace.

The MCP server:
- Provides glean_comments, glean_logs and glean_todos (one fresh scan per call)
- Provides glean_resolve_todo to turn a listed TODO into a file location
- Provides glean_status with scan statistics
- Communicates via stdio (standard MCP transport)

Example:
  glean mcp -C /path/to/project`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, cfg, err := currentOptions().load()
	if err != nil {
		return err
	}

	// Stdout carries the protocol; diagnostics go to stderr.
	logger := newLogger(os.Stderr, verbose)
	fmt.Fprintf(os.Stderr, "Glean MCP Server\n")
	fmt.Fprintf(os.Stderr, "Workspace: %s\n\n", root)

	srv, err := mcp.NewServer(cfg, root, Version, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	return srv.Serve(ctx)
}
