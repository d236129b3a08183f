package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/ddl"
	"github.com/kayz/snowddl/internal/logger"
)

var (
	ddlDatabase string
	ddlSchema   string
	ddlAgent    string
	ddlOutput   string
)

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Generate DDL for an agent on the source account",
	Long: `Fetch an agent from the source account and print its
CREATE OR REPLACE AGENT statement. Defaults for database, schema and
agent come from the source section of the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database := ddlDatabase
		if database == "" {
			database = cfg.Source.Database
		}
		schema := ddlSchema
		if schema == "" {
			schema = cfg.Source.Schema
		}
		name := ddlAgent
		if name == "" {
			name = cfg.Source.DefaultAgent
		}
		if database == "" || schema == "" || name == "" {
			return fmt.Errorf("database, schema and agent are required (flags or config)")
		}

		client, err := sourceClient(cfg)
		if err != nil {
			return err
		}

		agent, err := client.GetAgent(cmd.Context(), database, schema, name)
		if err != nil {
			return err
		}

		statement := ddl.Render(agent.Name, database, schema, agent.AgentSpec, agent.Comment, renderOptions(cfg))
		if ddlOutput != "" {
			if err := os.WriteFile(ddlOutput, []byte(statement+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", ddlOutput, err)
			}
			logger.Info("Wrote %s", ddlOutput)
			return nil
		}
		fmt.Println(statement)
		return nil
	},
}

func init() {
	ddlCmd.Flags().StringVarP(&ddlDatabase, "database", "d", "", "Database containing the agent")
	ddlCmd.Flags().StringVarP(&ddlSchema, "schema", "s", "", "Schema containing the agent")
	ddlCmd.Flags().StringVarP(&ddlAgent, "agent", "a", "", "Agent name")
	ddlCmd.Flags().StringVarP(&ddlOutput, "output", "o", "", "Write the statement to a file instead of stdout")
	rootCmd.AddCommand(ddlCmd)
}
