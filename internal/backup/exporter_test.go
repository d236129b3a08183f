package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kayz/snowddl/internal/ddl"
	"github.com/kayz/snowddl/internal/snowflake"
)

type fakeCatalog struct {
	agents  []snowflake.Agent
	badGets map[string]error
}

func (f *fakeCatalog) ListAgents(ctx context.Context, database, schema string) ([]snowflake.Agent, error) {
	return f.agents, nil
}

func (f *fakeCatalog) GetAgent(ctx context.Context, database, schema, name string) (*snowflake.Agent, error) {
	if err, ok := f.badGets[name]; ok {
		return nil, err
	}
	for i := range f.agents {
		if f.agents[i].Name == name {
			return &f.agents[i], nil
		}
	}
	return nil, errors.New("not found")
}

func TestExportWritesOneFilePerAgent(t *testing.T) {
	outDir := t.TempDir()
	catalog := &fakeCatalog{
		agents: []snowflake.Agent{
			{Name: "SALES_AGENT", AgentSpec: `{"models": {"orchestration": "auto"}}`, Comment: "sales"},
			{Name: "HR_AGENT", AgentSpec: `{}`},
		},
	}

	e := &Exporter{
		API:      catalog,
		Database: "PROD_DB",
		Schema:   "PUBLIC",
		OutDir:   outDir,
		Options:  ddl.DefaultOptions(),
	}
	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Exported != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 2 exported", summary)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "SALES_AGENT.sql"))
	if err != nil {
		t.Fatalf("missing export: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "CREATE OR REPLACE AGENT PROD_DB.PUBLIC.SALES_AGENT") {
		t.Errorf("unexpected file start: %s", text[:60])
	}
	if !strings.Contains(text, "COMMENT = 'sales'") {
		t.Error("expected comment in exported DDL")
	}
	if _, err := os.Stat(filepath.Join(outDir, "HR_AGENT.sql")); err != nil {
		t.Errorf("missing second export: %v", err)
	}
}

func TestExportSkipsFailingAgents(t *testing.T) {
	outDir := t.TempDir()
	catalog := &fakeCatalog{
		agents: []snowflake.Agent{
			{Name: "GOOD", AgentSpec: `{}`},
			{Name: "BAD"},
		},
		badGets: map[string]error{"BAD": errors.New("forbidden")},
	}

	e := &Exporter{API: catalog, Database: "DB", Schema: "S", OutDir: outDir, Options: ddl.DefaultOptions()}
	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Exported != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 exported 1 failed", summary)
	}
	if len(summary.Files) != 1 || !strings.HasSuffix(summary.Files[0], "GOOD.sql") {
		t.Errorf("unexpected files: %v", summary.Files)
	}
}

func TestFileNameSanitizesSeparators(t *testing.T) {
	if got := fileName(`A/B:C`); got != "A_B_C.sql" {
		t.Errorf("fileName = %q", got)
	}
}

func TestNormalizeCron(t *testing.T) {
	if got := normalizeCron("0 2 * * *"); got != "0 0 2 * * *" {
		t.Errorf("normalizeCron = %q", got)
	}
	if got := normalizeCron("30 0 2 * * *"); got != "30 0 2 * * *" {
		t.Errorf("six-field expression changed: %q", got)
	}
}
