package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathReadsAccountsAndRenderSection(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, ".snowddl.yaml")
	content := `source:
  account_url: "https://dev.snowflakecomputing.com"
  token: "dev-pat"
  database: "SALES"
  schema: "DATA"
target:
  account_url: "https://prod.snowflakecomputing.com"
  token: "prod-pat"
render:
  truncate_descriptions: false
  escape_quotes: true
  analyst_view_field: "identifier"
migration:
  name_suffix: "_LIVE"
  add_metadata: false
  test_connections: false
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Source.AccountURL != "https://dev.snowflakecomputing.com" {
		t.Fatalf("unexpected source url: %q", cfg.Source.AccountURL)
	}
	if cfg.Source.Database != "SALES" || cfg.Source.Schema != "DATA" {
		t.Fatalf("unexpected source scope: %q.%q", cfg.Source.Database, cfg.Source.Schema)
	}
	if cfg.Target.Token != "prod-pat" {
		t.Fatalf("unexpected target token")
	}
	if cfg.Render.TruncateDescriptions == nil || *cfg.Render.TruncateDescriptions {
		t.Fatalf("expected truncate_descriptions=false")
	}
	if !cfg.Render.EscapeQuotes {
		t.Fatalf("expected escape_quotes=true")
	}
	if cfg.Render.AnalystViewField != "identifier" {
		t.Fatalf("unexpected analyst_view_field: %q", cfg.Render.AnalystViewField)
	}
	if cfg.Migration.NameSuffix != "_LIVE" || cfg.Migration.AddMetadata || cfg.Migration.TestConnections {
		t.Fatalf("migration section mis-read: %+v", cfg.Migration)
	}
}

func TestLoadFromPathMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Migration.NameSuffix != "_PROD" || !cfg.Migration.AddMetadata {
		t.Fatalf("defaults not applied: %+v", cfg.Migration)
	}
}

func TestApplyEnvOverlaysConfig(t *testing.T) {
	t.Setenv("SOURCE_ACCOUNT_URL", "https://env.snowflakecomputing.com")
	t.Setenv("SOURCE_PAT", "env-pat")
	t.Setenv("TARGET_DATABASE", "PROD_DB")
	t.Setenv("MIGRATION_NAME_SUFFIX", "_ENV")
	t.Setenv("ADD_MIGRATION_METADATA", "false")

	cfg := DefaultConfig()
	cfg.Source.AccountURL = "https://file.snowflakecomputing.com"
	cfg.ApplyEnv()

	if cfg.Source.AccountURL != "https://env.snowflakecomputing.com" {
		t.Fatalf("env must win over the file: %q", cfg.Source.AccountURL)
	}
	if cfg.Source.Token != "env-pat" {
		t.Fatalf("source PAT not applied")
	}
	if cfg.Target.Database != "PROD_DB" {
		t.Fatalf("target database not applied")
	}
	if cfg.Migration.NameSuffix != "_ENV" || cfg.Migration.AddMetadata {
		t.Fatalf("migration env overrides not applied: %+v", cfg.Migration)
	}
}

func TestLoadEnvFile(t *testing.T) {
	tmp := t.TempDir()
	envPath := filepath.Join(tmp, "env.dev")
	content := "SOURCE_SCHEMA=FROM_FILE\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables that are already set.
	t.Setenv("SOURCE_SCHEMA", "placeholder")
	os.Unsetenv("SOURCE_SCHEMA")

	if err := LoadEnvFile(envPath); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("SOURCE_SCHEMA"); got != "FROM_FILE" {
		t.Fatalf("env file not loaded, SOURCE_SCHEMA=%q", got)
	}

	if err := LoadEnvFile(filepath.Join(tmp, "missing.env")); err != nil {
		t.Fatalf("missing env file must not error: %v", err)
	}
}
