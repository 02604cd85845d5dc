// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store is the document store that holds recommendation records
// produced by upstream processing jobs. Records are grouped and looked up
// by an opaque job identifier. SQLite and Redis backends are provided.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/guideline-chunker/internal/logger"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// RecordStore looks up and stores recommendation records by job id.
type RecordStore interface {
	// FindByJobID returns the records of one job in insertion order.
	// An unknown job yields an empty slice, not an error.
	FindByJobID(ctx context.Context, jobID string) ([]types.Record, error)

	// Import appends records under jobID and returns the job id used.
	// An empty jobID is replaced by a generated one.
	Import(ctx context.Context, jobID string, records []types.Record) (string, error)

	// Close releases the backend connection.
	Close() error
}

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg types.StoreConfig) (RecordStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}
	logger.Debug("opening %s record store", cfg.Driver)

	switch cfg.Driver {
	case types.StoreSQLite:
		return NewSQLiteStore(cfg.Path)
	case types.StoreRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// NewJobID returns a fresh job identifier.
func NewJobID() string {
	return uuid.New().String()
}

// jobIDOrNew returns jobID trimmed, or a new id when it is empty.
func jobIDOrNew(jobID string) string {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return NewJobID()
	}
	return jobID
}

// normalizeRecord trims the content of a record read from a backend.
func normalizeRecord(r types.Record) types.Record {
	r.Content = strings.TrimSpace(r.Content)
	return r
}

// LoadRecords reads a JSON or YAML array of records from path. The format
// follows the file extension; anything other than .yaml/.yml is JSON.
func LoadRecords(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}

	var records []types.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing records %s: %w", path, err)
	}
	return records, nil
}
