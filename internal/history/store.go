// Package history persists verification run records so pass/fail trends
// survive across builds.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/buildgate/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the SQLite database of verification runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// applies the schema. Use ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores one run record, assigning it a fresh ID when empty.
// Returns the stored record including its ID.
func (s *Store) Append(record models.RunRecord) (models.RunRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, command, warnings, bugs, passed, duration_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Command, record.Warnings, record.Bugs,
		boolToInt(record.Passed), record.Duration.Milliseconds(), record.Timestamp,
	)
	if err != nil {
		return models.RunRecord{}, fmt.Errorf("append run record: %w", err)
	}

	return record, nil
}

// Recent returns up to limit run records, newest first.
func (s *Store) Recent(limit int) ([]models.RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, command, warnings, bugs, passed, duration_ms, timestamp
		 FROM runs ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run records: %w", err)
	}
	defer rows.Close()

	var records []models.RunRecord
	for rows.Next() {
		var r models.RunRecord
		var passed int
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Command, &r.Warnings, &r.Bugs, &passed, &durationMS, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		r.Passed = passed != 0
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}

	return records, nil
}

// Prune removes records older than keepDays. A keepDays of zero keeps
// everything.
func (s *Store) Prune(keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	result, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune run records: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned records: %w", err)
	}
	return deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
