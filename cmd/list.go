package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/config"
	"github.com/kayz/snowddl/internal/snowflake"
)

var (
	listDatabase string
	listSchema   string
	listTarget   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse databases, schemas and agents",
}

// pickClient returns the source client, or the target one with --target.
func pickClient(cfg *config.Config) (*snowflake.Client, error) {
	if listTarget {
		return targetClient(cfg)
	}
	return sourceClient(cfg)
}

func accountConfig(cfg *config.Config) config.AccountConfig {
	if listTarget {
		return cfg.Target
	}
	return cfg.Source
}

var listDatabasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := pickClient(cfg)
		if err != nil {
			return err
		}
		databases, err := client.ListDatabases(cmd.Context())
		if err != nil {
			return err
		}
		for _, db := range databases {
			fmt.Println(db.Name)
		}
		return nil
	},
}

var listSchemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas in a database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := pickClient(cfg)
		if err != nil {
			return err
		}
		database := listDatabase
		if database == "" {
			database = accountConfig(cfg).Database
		}
		if database == "" {
			return fmt.Errorf("database is required (flag or config)")
		}
		schemas, err := client.ListSchemas(cmd.Context(), database)
		if err != nil {
			return err
		}
		for _, schema := range schemas {
			fmt.Println(schema.Name)
		}
		return nil
	},
}

var listAgentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List agents in a schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := pickClient(cfg)
		if err != nil {
			return err
		}
		acct := accountConfig(cfg)
		database := listDatabase
		if database == "" {
			database = acct.Database
		}
		schema := listSchema
		if schema == "" {
			schema = acct.Schema
		}
		if database == "" || schema == "" {
			return fmt.Errorf("database and schema are required (flags or config)")
		}
		agents, err := client.ListAgents(cmd.Context(), database, schema)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Printf("No agents found in %s.%s\n", database, schema)
			return nil
		}
		for _, agent := range agents {
			if agent.Comment != "" {
				fmt.Printf("%s\t%s\n", agent.Name, agent.Comment)
			} else {
				fmt.Println(agent.Name)
			}
		}
		return nil
	},
}

func init() {
	listCmd.PersistentFlags().StringVarP(&listDatabase, "database", "d", "", "Database to browse")
	listCmd.PersistentFlags().StringVarP(&listSchema, "schema", "s", "", "Schema to browse")
	listCmd.PersistentFlags().BoolVar(&listTarget, "target", false, "Browse the target account instead of the source")
	listCmd.AddCommand(listDatabasesCmd)
	listCmd.AddCommand(listSchemasCmd)
	listCmd.AddCommand(listAgentsCmd)
	rootCmd.AddCommand(listCmd)
}
