package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/history"
	"github.com/kayz/snowddl/internal/logger"
	"github.com/kayz/snowddl/internal/migrate"
)

var (
	migrateAgent          string
	migrateTargetName     string
	migrateSourceDatabase string
	migrateSourceSchema   string
	migrateTargetDatabase string
	migrateTargetSchema   string
	migrateNoMetadata     bool
	migrateSkipChecks     bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy an agent from the source to the target account",
	Long: `Fetch an agent from the source account and create it on the
target account. By default the migrated agent gets the configured name
suffix and a comment noting where it came from, and the run is recorded
in the local migration history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		req := migrate.Request{
			SourceDatabase: firstNonEmpty(migrateSourceDatabase, cfg.Source.Database),
			SourceSchema:   firstNonEmpty(migrateSourceSchema, cfg.Source.Schema),
			SourceAgent:    firstNonEmpty(migrateAgent, cfg.Source.DefaultAgent),
			TargetDatabase: firstNonEmpty(migrateTargetDatabase, cfg.Target.Database),
			TargetSchema:   firstNonEmpty(migrateTargetSchema, cfg.Target.Schema),
			TargetName:     migrateTargetName,
		}
		if req.SourceDatabase == "" || req.SourceSchema == "" || req.SourceAgent == "" {
			return fmt.Errorf("source database, schema and agent are required (flags or config)")
		}
		if req.TargetDatabase == "" || req.TargetSchema == "" {
			return fmt.Errorf("target database and schema are required (flags or config)")
		}

		source, err := sourceClient(cfg)
		if err != nil {
			return err
		}
		target, err := targetClient(cfg)
		if err != nil {
			return err
		}

		settings := cfg.Migration
		if migrateNoMetadata {
			settings.AddMetadata = false
		}
		if migrateSkipChecks {
			settings.TestConnections = false
		}

		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			logger.Warn("Migration history unavailable: %v", err)
			store = nil
		} else {
			defer store.Close()
		}

		m := migrate.New(source, target, cfg.Source.AccountURL, cfg.Target.AccountURL, settings, store)
		res, err := m.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Agent %s migrated to %s.%s.%s\n", req.SourceAgent, req.TargetDatabase, req.TargetSchema, res.TargetAgent)
		return nil
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateAgent, "agent", "a", "", "Agent to migrate")
	migrateCmd.Flags().StringVar(&migrateTargetName, "target-name", "", "Exact name for the migrated agent (overrides the suffix)")
	migrateCmd.Flags().StringVar(&migrateSourceDatabase, "source-database", "", "Source database")
	migrateCmd.Flags().StringVar(&migrateSourceSchema, "source-schema", "", "Source schema")
	migrateCmd.Flags().StringVar(&migrateTargetDatabase, "target-database", "", "Target database")
	migrateCmd.Flags().StringVar(&migrateTargetSchema, "target-schema", "", "Target schema")
	migrateCmd.Flags().BoolVar(&migrateNoMetadata, "no-metadata", false, "Do not append the migration note to the agent comment")
	migrateCmd.Flags().BoolVar(&migrateSkipChecks, "skip-connection-checks", false, "Skip the connection checks before migrating")
	rootCmd.AddCommand(migrateCmd)
}
