// Package snowflake is a thin client for the Snowflake REST API (api/v2),
// covering just the agent and catalog endpoints the CLI needs. All SQL and
// network interaction lives here; the statement renderer never does I/O.
package snowflake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one Snowflake account using PAT bearer authentication.
type Client struct {
	accountURL  string
	token       string
	accountName string
	client      *http.Client
}

// NewClient creates a client for the given account. accountName is a
// label used in error messages ("source", "target").
func NewClient(accountURL, token, accountName string) *Client {
	return &Client{
		accountURL:  strings.TrimRight(accountURL, "/"),
		token:       token,
		accountName: accountName,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Agent is the API's description of one agent. AgentSpec is the raw
// specification JSON document.
type Agent struct {
	Name      string `json:"name"`
	Comment   string `json:"comment,omitempty"`
	CreatedOn string `json:"created_on,omitempty"`
	Owner     string `json:"owner,omitempty"`
	AgentSpec string `json:"agent_spec,omitempty"`
}

// NamedObject is a database, schema or warehouse listing entry.
type NamedObject struct {
	Name string `json:"name"`
}

// TestConnection verifies the account is reachable and the token works.
func (c *Client) TestConnection(ctx context.Context) error {
	var out []NamedObject
	if err := c.get(ctx, "/api/v2/databases", &out); err != nil {
		return fmt.Errorf("connection to %s account failed: %w", c.accountName, err)
	}
	return nil
}

// ListDatabases returns the databases visible to the token.
func (c *Client) ListDatabases(ctx context.Context) ([]NamedObject, error) {
	var out []NamedObject
	if err := c.get(ctx, "/api/v2/databases", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSchemas returns the schemas of a database.
func (c *Client) ListSchemas(ctx context.Context, database string) ([]NamedObject, error) {
	var out []NamedObject
	path := fmt.Sprintf("/api/v2/databases/%s/schemas", url.PathEscape(database))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWarehouses returns the warehouses visible to the token.
func (c *Client) ListWarehouses(ctx context.Context) ([]NamedObject, error) {
	var out []NamedObject
	if err := c.get(ctx, "/api/v2/warehouses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAgents returns all agents in a database.schema scope.
func (c *Client) ListAgents(ctx context.Context, database, schema string) ([]Agent, error) {
	var out []Agent
	if err := c.get(ctx, agentsPath(database, schema), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAgent returns the full description of one agent, including its
// specification document.
func (c *Client) GetAgent(ctx context.Context, database, schema, name string) (*Agent, error) {
	var out Agent
	path := agentsPath(database, schema) + "/" + url.PathEscape(name)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAgent creates an agent from a config object: the agent name plus
// the specification fields, as accepted by the POST endpoint.
func (c *Client) CreateAgent(ctx context.Context, database, schema string, agentConfig map[string]any) error {
	return c.post(ctx, agentsPath(database, schema), agentConfig)
}

func agentsPath(database, schema string) string {
	return fmt.Sprintf("/api/v2/databases/%s/schemas/%s/agents",
		url.PathEscape(database), url.PathEscape(schema))
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.accountURL+path, nil)
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", c.accountName, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "snowddl/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return nil, fmt.Errorf("%s account returned %s: %s", c.accountName, resp.Status, detail)
	}
	return body, nil
}
