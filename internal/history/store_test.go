package history

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)

	rec := &Record{
		SourceAccount:  "dev.snowflakecomputing.com",
		SourceDatabase: "DEV_DB",
		SourceSchema:   "PUBLIC",
		SourceAgent:    "SALES_AGENT",
		TargetAccount:  "prod.snowflakecomputing.com",
		TargetDatabase: "PROD_DB",
		TargetSchema:   "PUBLIC",
		TargetAgent:    "SALES_AGENT_PROD",
		Status:         StatusSuccess,
	}
	if err := s.Add(rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated ID")
	}
	if rec.Timestamp.IsZero() {
		t.Error("expected assigned timestamp")
	}

	records, err := s.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != rec.ID {
		t.Errorf("ID = %q, want %q", got.ID, rec.ID)
	}
	if got.SourceAgent != "SALES_AGENT" || got.TargetAgent != "SALES_AGENT_PROD" {
		t.Errorf("unexpected agents: %q -> %q", got.SourceAgent, got.TargetAgent)
	}
	if got.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", got.Status, StatusSuccess)
	}
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.Add(&Record{SourceAgent: "A", TargetAgent: "B", Status: StatusFailed}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	records, err := s.List(3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	all, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 records with no limit, got %d", len(all))
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add(&Record{SourceAgent: "A", TargetAgent: "B", Status: StatusSuccess}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	records, err := s.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history after clear, got %d records", len(records))
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add(&Record{
		SourceAccount: "dev", SourceDatabase: "DB1", SourceSchema: "S1", SourceAgent: "AGENT1",
		TargetAccount: "prod", TargetDatabase: "DB2", TargetSchema: "S2", TargetAgent: "AGENT1_PROD",
		Status: StatusFailed, Detail: "connection refused",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var buf strings.Builder
	if err := s.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,source_account") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "AGENT1_PROD") || !strings.Contains(lines[1], "connection refused") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Add(&Record{SourceAgent: "A", TargetAgent: "B", Status: StatusSuccess}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	s.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	records, err := s2.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after reopen, got %d", len(records))
	}
}
