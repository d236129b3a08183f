// Package history records cross-account migrations in a local SQLite
// database so past runs can be reviewed and exported.
package history

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed migration history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Record is one migration attempt, successful or not.
type Record struct {
	ID             string
	Timestamp      time.Time
	SourceAccount  string
	SourceDatabase string
	SourceSchema   string
	SourceAgent    string
	TargetAccount  string
	TargetDatabase string
	TargetSchema   string
	TargetAgent    string
	Status         string
	Detail         string
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// NewStore opens (or creates) the history database at the given path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id               TEXT PRIMARY KEY,
			timestamp        TEXT NOT NULL,
			source_account   TEXT NOT NULL,
			source_database  TEXT NOT NULL,
			source_schema    TEXT NOT NULL,
			source_agent     TEXT NOT NULL,
			target_account   TEXT NOT NULL,
			target_database  TEXT NOT NULL,
			target_schema    TEXT NOT NULL,
			target_agent     TEXT NOT NULL,
			status           TEXT NOT NULL,
			detail           TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_migrations_timestamp ON migrations(timestamp);
	`)
	return err
}

// Add stores a migration record, assigning an id and timestamp when unset.
func (s *Store) Add(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO migrations (
			id, timestamp,
			source_account, source_database, source_schema, source_agent,
			target_account, target_database, target_schema, target_agent,
			status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Timestamp.Format(time.RFC3339),
		rec.SourceAccount, rec.SourceDatabase, rec.SourceSchema, rec.SourceAgent,
		rec.TargetAccount, rec.TargetDatabase, rec.TargetSchema, rec.TargetAgent,
		rec.Status, rec.Detail)
	return err
}

// List returns the most recent records, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // no limit
	}

	rows, err := s.db.Query(`
		SELECT id, timestamp,
			source_account, source_database, source_schema, source_agent,
			target_account, target_database, target_schema, target_agent,
			status, detail
		FROM migrations
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var timestamp string
		var detail sql.NullString

		err := rows.Scan(&rec.ID, &timestamp,
			&rec.SourceAccount, &rec.SourceDatabase, &rec.SourceSchema, &rec.SourceAgent,
			&rec.TargetAccount, &rec.TargetDatabase, &rec.TargetSchema, &rec.TargetAgent,
			&rec.Status, &detail)
		if err != nil {
			return nil, err
		}

		if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
			rec.Timestamp = t
		}
		if detail.Valid {
			rec.Detail = detail.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all history records.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM migrations`)
	return err
}

// ExportCSV writes all records as CSV, newest first.
func (s *Store) ExportCSV(w io.Writer) error {
	records, err := s.List(0)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"timestamp",
		"source_account", "source_database", "source_schema", "source_agent",
		"target_account", "target_database", "target_schema", "target_agent",
		"status", "detail",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.SourceAccount, rec.SourceDatabase, rec.SourceSchema, rec.SourceAgent,
			rec.TargetAccount, rec.TargetDatabase, rec.TargetSchema, rec.TargetAgent,
			rec.Status, rec.Detail,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
