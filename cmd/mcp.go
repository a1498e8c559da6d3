package cmd

import (
	"github.com/huangsam/tweetstats/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tweetstats MCP server",
	Long:  `Launch an MCP server that allows AI agents to score roster companies via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Headers go to stderr so stdio stays clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
