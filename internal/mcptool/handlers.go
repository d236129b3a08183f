package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kayz/snowddl/internal/ddl"
	"github.com/kayz/snowddl/internal/snowflake"
)

// CatalogAPI is the subset of the Snowflake client the tools need.
type CatalogAPI interface {
	ListAgents(ctx context.Context, database, schema string) ([]snowflake.Agent, error)
	GetAgent(ctx context.Context, database, schema, name string) (*snowflake.Agent, error)
}

// GenerateDDL fetches an agent and returns its DDL statement.
func (s *Server) GenerateDDL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	database, ok := req.Params.Arguments["database"].(string)
	if !ok || database == "" {
		return mcp.NewToolResultError("database is required"), nil
	}
	schema, ok := req.Params.Arguments["schema"].(string)
	if !ok || schema == "" {
		return mcp.NewToolResultError("schema is required"), nil
	}
	name, ok := req.Params.Arguments["agent"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("agent is required"), nil
	}

	if s.api == nil {
		return mcp.NewToolResultError("no Snowflake account is configured"), nil
	}

	agent, err := s.api.GetAgent(ctx, database, schema, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch agent: %v", err)), nil
	}

	statement := ddl.Render(agent.Name, database, schema, agent.AgentSpec, agent.Comment, s.opts)
	return mcp.NewToolResultText(statement), nil
}

// RenderDDL renders a statement from a caller-supplied specification.
func (s *Server) RenderDDL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, ok := req.Params.Arguments["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	database, ok := req.Params.Arguments["database"].(string)
	if !ok || database == "" {
		return mcp.NewToolResultError("database is required"), nil
	}
	schema, ok := req.Params.Arguments["schema"].(string)
	if !ok || schema == "" {
		return mcp.NewToolResultError("schema is required"), nil
	}
	spec, ok := req.Params.Arguments["specification"].(string)
	if !ok {
		return mcp.NewToolResultError("specification is required"), nil
	}
	comment, _ := req.Params.Arguments["comment"].(string)

	statement := ddl.Render(name, database, schema, spec, comment, s.opts)
	return mcp.NewToolResultText(statement), nil
}

// ListAgents returns the agent names in a schema, one per line.
func (s *Server) ListAgents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	database, ok := req.Params.Arguments["database"].(string)
	if !ok || database == "" {
		return mcp.NewToolResultError("database is required"), nil
	}
	schema, ok := req.Params.Arguments["schema"].(string)
	if !ok || schema == "" {
		return mcp.NewToolResultError("schema is required"), nil
	}

	if s.api == nil {
		return mcp.NewToolResultError("no Snowflake account is configured"), nil
	}

	agents, err := s.api.ListAgents(ctx, database, schema)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list agents: %v", err)), nil
	}
	if len(agents) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No agents found in %s.%s", database, schema)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Agents in %s.%s:\n", database, schema)
	for _, agent := range agents {
		fmt.Fprintf(&b, "- %s", agent.Name)
		if agent.Comment != "" {
			fmt.Fprintf(&b, " (%s)", agent.Comment)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
