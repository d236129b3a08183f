// Package backup exports agent DDL statements to .sql files, either as a
// one-shot run or on a cron schedule.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kayz/snowddl/internal/ddl"
	"github.com/kayz/snowddl/internal/logger"
	"github.com/kayz/snowddl/internal/snowflake"
)

// CatalogAPI is the subset of the Snowflake client an export needs.
type CatalogAPI interface {
	ListAgents(ctx context.Context, database, schema string) ([]snowflake.Agent, error)
	GetAgent(ctx context.Context, database, schema, name string) (*snowflake.Agent, error)
}

// Exporter writes one DDL file per agent in a schema.
type Exporter struct {
	API      CatalogAPI
	Database string
	Schema   string
	OutDir   string
	Options  ddl.Options
}

// Summary reports what a single export run produced.
type Summary struct {
	Exported int
	Failed   int
	Files    []string
}

// Run exports every agent in the configured database and schema. Agents
// that fail to fetch are logged and skipped so one bad agent does not
// abort the whole backup.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(e.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	agents, err := e.API.ListAgents(ctx, e.Database, e.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	summary := &Summary{}
	for _, entry := range agents {
		agent, err := e.API.GetAgent(ctx, e.Database, e.Schema, entry.Name)
		if err != nil {
			logger.Warn("Skipping agent %s: %v", entry.Name, err)
			summary.Failed++
			continue
		}

		statement := ddl.Render(agent.Name, e.Database, e.Schema, agent.AgentSpec, agent.Comment, e.Options)
		path := filepath.Join(e.OutDir, fileName(agent.Name))
		if err := os.WriteFile(path, []byte(statement+"\n"), 0644); err != nil {
			logger.Warn("Failed to write %s: %v", path, err)
			summary.Failed++
			continue
		}

		logger.Debug("Exported %s", path)
		summary.Exported++
		summary.Files = append(summary.Files, path)
	}
	return summary, nil
}

// fileName flattens an agent name into a safe file name.
func fileName(agent string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, agent)
	return name + ".sql"
}
