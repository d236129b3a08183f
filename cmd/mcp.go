package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/logger"
	"github.com/kayz/snowddl/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generator as MCP tools over stdio",
	Long: `Run an MCP server exposing generate_ddl, render_ddl and
list_agents, for use from agent-aware editors. The generate_ddl and
list_agents tools need a configured source account; render_ddl works
without one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var api mcptool.CatalogAPI
		if client, err := sourceClient(cfg); err == nil {
			api = client
		} else {
			logger.Warn("Source account not configured, only render_ddl will work: %v", err)
		}

		return mcptool.NewServer(api, renderOptions(cfg), build).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
