package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Source    AccountConfig   `yaml:"source,omitempty"`
	Target    AccountConfig   `yaml:"target,omitempty"`
	Render    RenderConfig    `yaml:"render,omitempty"`
	Migration MigrationConfig `yaml:"migration,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AccountConfig identifies one Snowflake account and the default scope
// commands operate in. Token is a programmatic access token (PAT).
type AccountConfig struct {
	AccountURL   string `yaml:"account_url,omitempty"`
	Token        string `yaml:"token,omitempty"`
	User         string `yaml:"user,omitempty"`
	Database     string `yaml:"database,omitempty"`
	Schema       string `yaml:"schema,omitempty"`
	DefaultAgent string `yaml:"default_agent,omitempty"`
}

// RenderConfig exposes the statement formatting choices.
type RenderConfig struct {
	TruncateDescriptions *bool  `yaml:"truncate_descriptions,omitempty"`
	EscapeQuotes         bool   `yaml:"escape_quotes,omitempty"`
	IncludeProfile       *bool  `yaml:"include_profile,omitempty"`
	AnalystViewField     string `yaml:"analyst_view_field,omitempty"` // "semantic_view" or "identifier"
}

type MigrationConfig struct {
	NameSuffix      string `yaml:"name_suffix,omitempty"`
	AddMetadata     bool   `yaml:"add_metadata"`
	TestConnections bool   `yaml:"test_connections"`
}

type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Migration: MigrationConfig{
			NameSuffix:      "_PROD",
			AddMetadata:     true,
			TestConnections: true,
		},
		History: HistoryConfig{
			Path: filepath.Join(ConfigDir(), "history.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".snowddl")
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".snowddl.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// LoadEnvFile loads an env.dev style file into the process environment.
// A missing file is not an error; callers overlay with ApplyEnv either way.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overlays environment variables onto the config. Environment
// values win over the yaml file, matching how the statement generators
// have always been driven from env.dev.
func (c *Config) ApplyEnv() {
	applyAccountEnv(&c.Source, "SOURCE")
	applyAccountEnv(&c.Target, "TARGET")

	if v := os.Getenv("MIGRATION_NAME_SUFFIX"); v != "" {
		c.Migration.NameSuffix = v
	}
	if v := os.Getenv("ADD_MIGRATION_METADATA"); v != "" {
		c.Migration.AddMetadata = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TEST_CONNECTIONS"); v != "" {
		c.Migration.TestConnections = strings.EqualFold(v, "true")
	}
}

func applyAccountEnv(acct *AccountConfig, prefix string) {
	if v := os.Getenv(prefix + "_ACCOUNT_URL"); v != "" {
		acct.AccountURL = v
	}
	if v := os.Getenv(prefix + "_PAT"); v != "" {
		acct.Token = v
	}
	if v := os.Getenv(prefix + "_USER"); v != "" {
		acct.User = v
	}
	if v := os.Getenv(prefix + "_DATABASE"); v != "" {
		acct.Database = v
	}
	if v := os.Getenv(prefix + "_SCHEMA"); v != "" {
		acct.Schema = v
	}
	if v := os.Getenv(prefix + "_DEFAULT_AGENT"); v != "" {
		acct.DefaultAgent = v
	}
}
