package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/backup"
	"github.com/kayz/snowddl/internal/logger"
)

var (
	backupDatabase string
	backupSchema   string
	backupOutDir   string
	backupSchedule string
	backupTarget   bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export every agent in a schema to .sql files",
	Long: `Export the DDL of every agent in a schema, one .sql file per
agent. With --schedule the export repeats on a cron expression until
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		acct := cfg.Source
		client, err := sourceClient(cfg)
		if backupTarget {
			acct = cfg.Target
			client, err = targetClient(cfg)
		}
		if err != nil {
			return err
		}

		database := firstNonEmpty(backupDatabase, acct.Database)
		schema := firstNonEmpty(backupSchema, acct.Schema)
		if database == "" || schema == "" {
			return fmt.Errorf("database and schema are required (flags or config)")
		}

		exporter := &backup.Exporter{
			API:      client,
			Database: database,
			Schema:   schema,
			OutDir:   backupOutDir,
			Options:  renderOptions(cfg),
		}

		if backupSchedule == "" {
			summary, err := exporter.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d agents to %s (%d failed)\n", summary.Exported, backupOutDir, summary.Failed)
			return nil
		}

		scheduler := backup.NewScheduler(exporter)
		if err := scheduler.Start(backupSchedule); err != nil {
			return err
		}
		logger.Info("Backup scheduled (%s), press Ctrl+C to stop", backupSchedule)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		scheduler.Stop()
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupDatabase, "database", "d", "", "Database to export")
	backupCmd.Flags().StringVarP(&backupSchema, "schema", "s", "", "Schema to export")
	backupCmd.Flags().StringVarP(&backupOutDir, "out", "o", "backups", "Directory for the .sql files")
	backupCmd.Flags().StringVar(&backupSchedule, "schedule", "", "Cron expression for repeated exports (5 or 6 fields)")
	backupCmd.Flags().BoolVar(&backupTarget, "target", false, "Export from the target account instead of the source")
	rootCmd.AddCommand(backupCmd)
}
