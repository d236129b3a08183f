// Package mcptool exposes the DDL generator over the Model Context
// Protocol so agent-aware editors can call it as a tool.
package mcptool

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kayz/snowddl/internal/ddl"
)

// Server bundles the MCP tool handlers with the client and render
// options they operate on.
type Server struct {
	api     CatalogAPI
	opts    ddl.Options
	version string
}

// NewServer builds the tool server around a Snowflake client.
func NewServer(api CatalogAPI, opts ddl.Options, version string) *Server {
	return &Server{api: api, opts: opts, version: version}
}

// Serve registers the tools and serves MCP over stdio until the client
// disconnects.
func (s *Server) Serve() error {
	srv := server.NewMCPServer("snowddl", s.version)

	srv.AddTool(mcp.NewTool("generate_ddl",
		mcp.WithDescription("Generate the CREATE OR REPLACE AGENT statement for a Cortex agent"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database containing the agent")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema containing the agent")),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	), s.GenerateDDL)

	srv.AddTool(mcp.NewTool("render_ddl",
		mcp.WithDescription("Render a DDL statement from a raw agent specification JSON document"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Agent name for the statement header")),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database for the statement header")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema for the statement header")),
		mcp.WithString("specification", mcp.Required(), mcp.Description("Agent specification JSON")),
		mcp.WithString("comment", mcp.Description("Optional agent comment")),
	), s.RenderDDL)

	srv.AddTool(mcp.NewTool("list_agents",
		mcp.WithDescription("List Cortex agents in a schema"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database to list")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema to list")),
	), s.ListAgents)

	return server.ServeStdio(srv)
}
