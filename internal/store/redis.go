// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

const (
	defaultKeyPrefix = "guideline:"
	jobKeyPart       = "job:" // list of JSON records: {prefix}job:{job_id}
)

// RedisStore keeps each job's records as a Redis list of JSON documents.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the server in cfg and checks it answers.
func NewRedisStore(ctx context.Context, cfg types.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client. An empty prefix uses
// the default "guideline:".
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) jobKey(jobID string) string {
	return s.prefix + jobKeyPart + jobID
}

// FindByJobID returns the records of jobID in insertion order.
func (s *RedisStore) FindByJobID(ctx context.Context, jobID string) ([]types.Record, error) {
	items, err := s.client.LRange(ctx, s.jobKey(jobID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	records := make([]types.Record, 0, len(items))
	for i, item := range items {
		var r types.Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i, err)
		}
		r.JobID = jobID
		records = append(records, normalizeRecord(r))
	}
	return records, nil
}

// Import appends records to the job's list in one pipeline.
func (s *RedisStore) Import(ctx context.Context, jobID string, records []types.Record) (string, error) {
	jobID = jobIDOrNew(jobID)
	if len(records) == 0 {
		return jobID, nil
	}

	values := make([]any, 0, len(records))
	for i, r := range records {
		r.JobID = ""
		data, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encoding record %d: %w", i, err)
		}
		values = append(values, data)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.jobKey(jobID), values...)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("storing records: %w", err)
	}
	return jobID, nil
}
