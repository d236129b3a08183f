// Package migrate copies Cortex agents between Snowflake accounts.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kayz/snowddl/internal/config"
	"github.com/kayz/snowddl/internal/history"
	"github.com/kayz/snowddl/internal/logger"
	"github.com/kayz/snowddl/internal/snowflake"
)

// AgentAPI is the subset of the Snowflake client a migration needs.
type AgentAPI interface {
	TestConnection(ctx context.Context) error
	GetAgent(ctx context.Context, database, schema, name string) (*snowflake.Agent, error)
	CreateAgent(ctx context.Context, database, schema string, agentConfig map[string]any) error
}

// Migrator moves a single agent from a source account to a target account.
type Migrator struct {
	Source        AgentAPI
	Target        AgentAPI
	SourceAccount string
	TargetAccount string
	Settings      config.MigrationConfig
	History       *history.Store

	// now is swapped out in tests.
	now func() time.Time
}

// Request names the agent to copy and where to put it.
type Request struct {
	SourceDatabase string
	SourceSchema   string
	SourceAgent    string
	TargetDatabase string
	TargetSchema   string
	// TargetName overrides the suffix-based naming when set.
	TargetName string
}

// Result reports what was created.
type Result struct {
	TargetAgent string
}

// New builds a migrator over the given source and target clients.
func New(source, target AgentAPI, sourceAccount, targetAccount string, settings config.MigrationConfig, store *history.Store) *Migrator {
	return &Migrator{
		Source:        source,
		Target:        target,
		SourceAccount: sourceAccount,
		TargetAccount: targetAccount,
		Settings:      settings,
		History:       store,
		now:           time.Now,
	}
}

// TargetName resolves the name the migrated agent will carry.
func (m *Migrator) TargetName(req Request) string {
	if req.TargetName != "" {
		return req.TargetName
	}
	return req.SourceAgent + m.Settings.NameSuffix
}

// Run performs the migration and records the outcome in history.
func (m *Migrator) Run(ctx context.Context, req Request) (*Result, error) {
	finalName := m.TargetName(req)

	res, err := m.run(ctx, req, finalName)
	m.record(req, finalName, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Migrator) run(ctx context.Context, req Request, finalName string) (*Result, error) {
	if m.Settings.TestConnections {
		if err := m.Source.TestConnection(ctx); err != nil {
			return nil, fmt.Errorf("source connection check failed: %w", err)
		}
		if err := m.Target.TestConnection(ctx); err != nil {
			return nil, fmt.Errorf("target connection check failed: %w", err)
		}
	}

	logger.Info("Fetching agent %s.%s.%s from source account", req.SourceDatabase, req.SourceSchema, req.SourceAgent)
	agent, err := m.Source.GetAgent(ctx, req.SourceDatabase, req.SourceSchema, req.SourceAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source agent: %w", err)
	}
	if agent.AgentSpec == "" {
		return nil, fmt.Errorf("agent %s has no specification", req.SourceAgent)
	}

	var agentConfig map[string]any
	if err := json.Unmarshal([]byte(agent.AgentSpec), &agentConfig); err != nil {
		return nil, fmt.Errorf("source agent specification is not valid JSON: %w", err)
	}
	agentConfig["name"] = finalName

	if m.Settings.AddMetadata {
		original, _ := agentConfig["comment"].(string)
		if original == "" {
			original = agent.Comment
		}
		agentConfig["comment"] = fmt.Sprintf("%s\n\n[MIGRATED] From: %s → %s.%s.%s on %s",
			original, m.SourceAccount,
			req.SourceDatabase, req.SourceSchema, req.SourceAgent,
			m.now().Format("2006-01-02 15:04:05"))
	}

	logger.Info("Creating agent %s in %s.%s on target account", finalName, req.TargetDatabase, req.TargetSchema)
	if err := m.Target.CreateAgent(ctx, req.TargetDatabase, req.TargetSchema, agentConfig); err != nil {
		return nil, fmt.Errorf("failed to create target agent: %w", err)
	}

	return &Result{TargetAgent: finalName}, nil
}

func (m *Migrator) record(req Request, finalName string, runErr error) {
	if m.History == nil {
		return
	}

	rec := &history.Record{
		Timestamp:      m.now(),
		SourceAccount:  m.SourceAccount,
		SourceDatabase: req.SourceDatabase,
		SourceSchema:   req.SourceSchema,
		SourceAgent:    req.SourceAgent,
		TargetAccount:  m.TargetAccount,
		TargetDatabase: req.TargetDatabase,
		TargetSchema:   req.TargetSchema,
		TargetAgent:    finalName,
		Status:         history.StatusSuccess,
	}
	if runErr != nil {
		rec.Status = history.StatusFailed
		rec.Detail = runErr.Error()
	}
	if err := m.History.Add(rec); err != nil {
		logger.Warn("Failed to record migration history: %v", err)
	}
}
