package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/ddl"
)

var (
	renderName     string
	renderDatabase string
	renderSchema   string
	renderComment  string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render DDL from a local specification file",
	Long: `Render a CREATE OR REPLACE AGENT statement from a specification
JSON document on disk, or from stdin when the file is "-". No Snowflake
connection is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var raw []byte
		if args[0] == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read specification: %w", err)
		}

		name := renderName
		if name == "" && args[0] != "-" {
			base := filepath.Base(args[0])
			name = strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
		}
		if name == "" {
			return fmt.Errorf("agent name is required when reading from stdin (use --name)")
		}

		database := renderDatabase
		if database == "" {
			database = cfg.Source.Database
		}
		if database == "" {
			database = "MY_DATABASE"
		}
		schema := renderSchema
		if schema == "" {
			schema = cfg.Source.Schema
		}
		if schema == "" {
			schema = "PUBLIC"
		}

		statement := ddl.Render(name, database, schema, string(raw), renderComment, renderOptions(cfg))
		if renderOutput != "" {
			if err := os.WriteFile(renderOutput, []byte(statement+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", renderOutput, err)
			}
			return nil
		}
		fmt.Println(statement)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderName, "name", "n", "", "Agent name (defaults to the file name, uppercased)")
	renderCmd.Flags().StringVarP(&renderDatabase, "database", "d", "", "Database for the statement header")
	renderCmd.Flags().StringVarP(&renderSchema, "schema", "s", "", "Schema for the statement header")
	renderCmd.Flags().StringVarP(&renderComment, "comment", "c", "", "Agent comment")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the statement to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}
