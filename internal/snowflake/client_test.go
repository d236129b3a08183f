package snowflake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/databases/SALES/schemas/DATA/agents/MY_AGENT" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer pat-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		json.NewEncoder(w).Encode(Agent{
			Name:      "MY_AGENT",
			Comment:   "demo",
			AgentSpec: `{"models":{"orchestration":"auto"}}`,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pat-token", "source")
	agent, err := c.GetAgent(context.Background(), "SALES", "DATA", "MY_AGENT")
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if agent.Name != "MY_AGENT" || agent.Comment != "demo" {
		t.Fatalf("unexpected agent: %+v", agent)
	}
	if !strings.Contains(agent.AgentSpec, "orchestration") {
		t.Fatalf("agent spec not carried through: %q", agent.AgentSpec)
	}
}

func TestListAgents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/databases/DB/schemas/SC/agents" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Agent{{Name: "A"}, {Name: "B"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pat", "source")
	agents, err := c.ListAgents(context.Background(), "DB", "SC")
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	if len(agents) != 2 || agents[0].Name != "A" || agents[1].Name != "B" {
		t.Fatalf("unexpected agents: %+v", agents)
	}
}

func TestCreateAgentPostsConfig(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pat", "target")
	err := c.CreateAgent(context.Background(), "DB", "SC", map[string]any{
		"name":    "NEW_AGENT",
		"comment": "migrated",
	})
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	if received["name"] != "NEW_AGENT" {
		t.Fatalf("agent name not posted: %+v", received)
	}
}

func TestErrorCarriesStatusAndAccountName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such schema", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pat", "target")
	_, err := c.ListAgents(context.Background(), "DB", "SC")
	if err == nil {
		t.Fatalf("expected an error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "target") || !strings.Contains(msg, "404") || !strings.Contains(msg, "no such schema") {
		t.Fatalf("error lacks context: %q", msg)
	}
}

func TestTestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/databases" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]NamedObject{{Name: "DB"}})
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "pat", "source").TestConnection(context.Background()); err != nil {
		t.Fatalf("test connection: %v", err)
	}

	srv.Close()
	err := NewClient(srv.URL, "pat", "source").TestConnection(context.Background())
	if err == nil {
		t.Fatalf("expected a connection error after server close")
	}
	if !strings.Contains(err.Error(), "source") {
		t.Fatalf("error should name the account: %q", err)
	}
}
