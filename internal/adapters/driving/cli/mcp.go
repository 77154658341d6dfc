package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server, exposing the indexed
mailbox to AI assistants over stdio JSON-RPC.

Tools:
  ask_mail       answer a question about the indexed day of mail
  retrieve_mail  return the raw emails retrieved for a query

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "inboxqa": {
        "command": "/path/to/inboxqa",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	svc, docs, closer, err := buildAnswerService(cfg, activeDate(cfg))
	if err != nil {
		return err
	}
	defer closer()

	server, err := mcp.NewServer(&mcp.Ports{Answer: svc, Documents: docs})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
