// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// SQLiteStore keeps records in a single SQLite table indexed by job id.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			page TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			idx TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_job_id ON records(job_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// FindByJobID returns the records of jobID in insertion order.
func (s *SQLiteStore) FindByJobID(ctx context.Context, jobID string) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, source, type, page, category, idx, content
		 FROM records WHERE job_id = ? ORDER BY rowid`, jobID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var r types.Record
		if err := rows.Scan(&r.JobID, &r.Source, &r.Type, &r.Page, &r.Category, &r.Index, &r.Content); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, normalizeRecord(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// Import inserts records under jobID in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, jobID string, records []types.Record) (string, error) {
	jobID = jobIDOrNew(jobID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (job_id, source, type, page, category, idx, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			jobID, r.Source, r.Type, r.Page, r.Category, r.Index, r.Content,
		); err != nil {
			return "", fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing records: %w", err)
	}
	return jobID, nil
}
