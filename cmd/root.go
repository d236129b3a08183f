package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/snowddl/internal/config"
	"github.com/kayz/snowddl/internal/ddl"
	"github.com/kayz/snowddl/internal/logger"
	"github.com/kayz/snowddl/internal/snowflake"
)

var (
	logLevel   string
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "snowddl",
	Short: "Snowflake Cortex agent DDL generator and migrator",
	Long: `snowddl turns Snowflake Cortex agent specifications into
CREATE OR REPLACE AGENT statements, and moves agents between accounts.

Commands:
  snowddl ddl       Generate DDL for an agent on the source account
  snowddl render    Render DDL from a local specification file
  snowddl list      Browse databases, schemas and agents
  snowddl migrate   Copy an agent from the source to the target account
  snowddl backup    Export every agent in a schema to .sql files
  snowddl history   Review past migrations
  snowddl mcp       Serve the generator as MCP tools over stdio`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)

		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: .snowddl.yaml next to the binary)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Path to .env file with account credentials")
}

// loadConfig reads the config file, then overlays environment variables.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func sourceClient(cfg *config.Config) (*snowflake.Client, error) {
	if cfg.Source.AccountURL == "" || cfg.Source.Token == "" {
		return nil, fmt.Errorf("source account is not configured: set SOURCE_ACCOUNT_URL and SOURCE_PAT or fill the config file")
	}
	return snowflake.NewClient(cfg.Source.AccountURL, cfg.Source.Token, "source"), nil
}

func targetClient(cfg *config.Config) (*snowflake.Client, error) {
	if cfg.Target.AccountURL == "" || cfg.Target.Token == "" {
		return nil, fmt.Errorf("target account is not configured: set TARGET_ACCOUNT_URL and TARGET_PAT or fill the config file")
	}
	return snowflake.NewClient(cfg.Target.AccountURL, cfg.Target.Token, "target"), nil
}

// renderOptions maps the render section of the config onto serializer options.
func renderOptions(cfg *config.Config) ddl.Options {
	opts := ddl.DefaultOptions()
	if cfg.Render.TruncateDescriptions != nil {
		opts.TruncateDescriptions = *cfg.Render.TruncateDescriptions
	}
	opts.EscapeEmbeddedQuotes = cfg.Render.EscapeQuotes
	if cfg.Render.IncludeProfile != nil {
		opts.IncludeProfile = *cfg.Render.IncludeProfile
	}
	if cfg.Render.AnalystViewField == string(ddl.AnalystViewIdentifier) {
		opts.AnalystViewField = ddl.AnalystViewIdentifier
	}
	return opts
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
