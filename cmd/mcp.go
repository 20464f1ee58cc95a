package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/marsdash/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the rover list and rover photo lookups as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "marsdash MCP server started on stdio (upstream=%s, rovers=%d)\n",
			cfg.Upstream.BaseURL, len(cfg.Dashboard.Rovers))

		srv := mcpserver.NewServer(newUpstreamClient(cfg), cfg.Dashboard.Rovers, cfg.Dashboard.DefaultSol)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
