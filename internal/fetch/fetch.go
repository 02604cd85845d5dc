// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch pulls one job's recommendation records out of the record
// store and bundles them with the guideline metadata supplied by the user.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/guideline-chunker/internal/logger"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

var (
	// ErrEmptyJobID is returned when no job id was given.
	ErrEmptyJobID = errors.New("job id is required")

	// ErrNoRecords is returned when the store has no records for the job.
	ErrNoRecords = errors.New("no recommendations found for job")
)

// Finder is the part of the record store that Fetch needs.
type Finder interface {
	FindByJobID(ctx context.Context, jobID string) ([]types.Record, error)
}

// Fetch looks up the records of jobID and wraps them with meta. Store
// failures come back as one wrapped error; there is no retry and no
// partial result.
func Fetch(ctx context.Context, store Finder, jobID string, meta types.Metadata) (*types.FetchResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrEmptyJobID
	}

	logger.Debug("fetching records for job %s", jobID)
	records, err := store.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetching recommendations for job %s: %w", jobID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoRecords, jobID)
	}

	flat := make([]types.Record, len(records))
	for i, r := range records {
		flat[i] = types.Record{
			Source:   r.Source,
			Type:     r.Type,
			Page:     r.Page,
			Category: r.Category,
			Index:    r.Index,
			Content:  strings.TrimSpace(r.Content),
		}
	}
	logger.Info("fetched %d records for job %s", len(flat), jobID)

	return &types.FetchResult{
		JobID:           jobID,
		Title:           meta.Title,
		Stage:           types.SplitList([]string(meta.Stage)),
		Disease:         types.SplitList([]string(meta.Disease)),
		Specialty:       types.SplitList([]string(meta.Specialty)),
		Recommendations: flat,
	}, nil
}
