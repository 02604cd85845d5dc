// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// --- test helpers ---

func sampleRecords() []types.Record {
	return []types.Record{
		{Source: "drf-guideline.pdf", Type: "recommendation", Page: "4", Category: "Immobilization", Index: "1", Content: "  Splint the wrist in neutral.\n"},
		{Source: "drf-guideline.pdf", Type: "recommendation", Page: "5", Category: "Therapy", Index: "2", Content: "Start finger motion early."},
		{Source: "drf-guideline.pdf", Type: "table", Page: "7", Category: "Therapy", Index: "3", Content: "Refer to hand therapy."},
	}
}

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "store", "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

// backends runs fn against every backend so both honour the same contract.
func backends(t *testing.T, fn func(t *testing.T, s RecordStore)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, setupSQLite(t)) })
	t.Run("redis", func(t *testing.T) {
		s, _ := setupRedis(t)
		fn(t, s)
	})
}

// --- contract tests ---

func TestImportAndFind(t *testing.T) {
	backends(t, func(t *testing.T, s RecordStore) {
		ctx := context.Background()

		jobID, err := s.Import(ctx, "job-42", sampleRecords())
		require.NoError(t, err)
		assert.Equal(t, "job-42", jobID)

		got, err := s.FindByJobID(ctx, "job-42")
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Splint the wrist in neutral.", got[0].Content, "content is trimmed")
		assert.Equal(t, "Start finger motion early.", got[1].Content)
		assert.Equal(t, "Refer to hand therapy.", got[2].Content)
		for _, r := range got {
			assert.Equal(t, "job-42", r.JobID)
			assert.Equal(t, "drf-guideline.pdf", r.Source)
		}
		assert.Equal(t, "Immobilization", got[0].Category)
		assert.Equal(t, "table", got[2].Type)
		assert.Equal(t, "7", got[2].Page)
		assert.Equal(t, "3", got[2].Index)
	})
}

func TestFindUnknownJobIsEmpty(t *testing.T) {
	backends(t, func(t *testing.T, s RecordStore) {
		got, err := s.FindByJobID(context.Background(), "nope")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestImportGeneratesJobID(t *testing.T) {
	backends(t, func(t *testing.T, s RecordStore) {
		ctx := context.Background()

		jobID, err := s.Import(ctx, "  ", sampleRecords()[:1])
		require.NoError(t, err)
		_, err = uuid.Parse(jobID)
		require.NoError(t, err, "generated job id should be a uuid")

		got, err := s.FindByJobID(ctx, jobID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestImportKeepsJobsSeparate(t *testing.T) {
	backends(t, func(t *testing.T, s RecordStore) {
		ctx := context.Background()
		recs := sampleRecords()

		_, err := s.Import(ctx, "a", recs[:2])
		require.NoError(t, err)
		_, err = s.Import(ctx, "b", recs[2:])
		require.NoError(t, err)
		_, err = s.Import(ctx, "a", recs[2:])
		require.NoError(t, err)

		a, err := s.FindByJobID(ctx, "a")
		require.NoError(t, err)
		b, err := s.FindByJobID(ctx, "b")
		require.NoError(t, err)

		assert.Len(t, a, 3)
		assert.Len(t, b, 1)
		assert.Equal(t, "Refer to hand therapy.", a[2].Content, "appended in order")
	})
}

// --- backend specifics ---

func TestSQLiteCreatesDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLiteSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.Import(context.Background(), "job", sampleRecords())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.FindByJobID(context.Background(), "job")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRedisKeyLayout(t *testing.T) {
	s, mr := setupRedis(t)
	_, err := s.Import(context.Background(), "job-7", sampleRecords()[:2])
	require.NoError(t, err)

	items, err := mr.List("guideline:job:job-7")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NotContains(t, items[0], "job_id")
}

func TestRedisCorruptRecord(t *testing.T) {
	s, mr := setupRedis(t)
	_, err := mr.Push("guideline:job:bad", "{not json")
	require.NoError(t, err)

	_, err = s.FindByJobID(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRedisConnectionFailure(t *testing.T) {
	s, mr := setupRedis(t)
	mr.Close()

	_, err := s.FindByJobID(context.Background(), "job")
	assert.Error(t, err)
}

// --- Open ---

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(ctx, types.StoreConfig{Driver: types.StoreSQLite, Path: filepath.Join(t.TempDir(), "r.db")})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := Open(ctx, types.StoreConfig{Driver: types.StoreRedis, RedisAddr: mr.Addr(), KeyPrefix: "test:"})
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Import(ctx, "j", sampleRecords()[:1])
		require.NoError(t, err)
		assert.True(t, mr.Exists("test:job:j"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := Open(ctx, types.StoreConfig{Driver: types.StoreRedis, RedisAddr: addr})
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(ctx, types.StoreConfig{Driver: "mongo"})
		assert.Error(t, err)
	})
}

// --- LoadRecords ---

func TestLoadRecords(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
  {"source": "a.pdf", "type": "recommendation", "page": "1", "category": "c", "index": "0", "content": "First"},
  {"source": "a.pdf", "content": "Second"}
]`), 0o644))

	yamlPath := filepath.Join(dir, "records.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- source: b.pdf\n  page: 12\n  content: Third\n"), 0o644))

	got, err := LoadRecords(jsonPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Content)
	assert.Equal(t, "", got[1].Page)

	got, err = LoadRecords(yamlPath)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Page)

	_, err = LoadRecords(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"not": "an array"}`), 0o644))
	_, err = LoadRecords(badPath)
	assert.Error(t, err)
}
