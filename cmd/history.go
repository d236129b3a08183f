package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/history"
)

var (
	historyLimit int
	historyCSV   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review past migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if historyCSV {
			return store.ExportCSV(os.Stdout)
		}

		records, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No migrations recorded.")
			return nil
		}
		for _, rec := range records {
			marker := "ok"
			if rec.Status == history.StatusFailed {
				marker = "FAILED"
			}
			fmt.Printf("%s  %-6s  %s.%s.%s -> %s.%s.%s\n",
				rec.Timestamp.Format("2006-01-02 15:04:05"), marker,
				rec.SourceDatabase, rec.SourceSchema, rec.SourceAgent,
				rec.TargetDatabase, rec.TargetSchema, rec.TargetAgent)
			if rec.Detail != "" {
				fmt.Printf("    %s\n", rec.Detail)
			}
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all migration history",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Migration history cleared.")
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History.Path)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of records to show")
	historyCmd.Flags().BoolVar(&historyCSV, "csv", false, "Print the full history as CSV")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
