// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// resetFlags restores every flag of cmd and its children to its default so
// state does not leak between executions of the shared rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))

	args = append(args, "--secrets-dir", filepath.Join(t.TempDir(), "secrets"))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func decodeChunks(t *testing.T, data string) []types.Chunk {
	t.Helper()
	var chunks []types.Chunk
	require.NoError(t, json.Unmarshal([]byte(data), &chunks))
	return chunks
}

func TestExtractCommandTagged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrist.md")
	require.NoError(t, os.WriteFile(path, []byte(`---
title: Wrist Fracture Guide
---
1. Apply splint lor:A cor:2
2. Try ultrasound lor:Z cor:9
`), 0o644))

	out, err := execute(t, "", "extract", path, "--grammar", "tagged", "--stage", "Rehabilitation,Acute")
	require.NoError(t, err)

	chunks := decodeChunks(t, out)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Wrist Fracture Guide", chunks[0].Title)
	assert.Equal(t, []string{"Rehabilitation", "Acute"}, chunks[0].Stage)
	assert.Equal(t, []string{types.DefaultSpecialty}, chunks[0].Specialty)
	assert.Equal(t, "Apply splint", chunks[0].RecommendationContent)
	assert.Equal(t, "Moderate Confidence", chunks[0].RecommendationClass)
	assert.Equal(t, "A", chunks[0].Rating)
	assert.Equal(t, "Low Confidence", chunks[1].RecommendationClass)
	assert.Equal(t, "C", chunks[1].Rating)
}

func TestExtractCommandStdinTable(t *testing.T) {
	input := "| COR | LOE | Recommendation |\n|---|---|---|\n| 1 | B-R | Mobilize early. |\n"

	out, err := execute(t, input, "extract", "-", "--grammar", "table")
	require.NoError(t, err)

	chunks := decodeChunks(t, out)
	require.Len(t, chunks, 1)
	assert.Equal(t, "1", chunks[0].RecommendationClass)
	assert.Equal(t, "B-R", chunks[0].Rating)
	assert.Equal(t, types.DefaultTitle, chunks[0].GuideTitle)
}

func TestExtractCommandNoMatchesWritesEmptyArray(t *testing.T) {
	out, err := execute(t, "Just prose.\n", "extract", "-", "--grammar", "bare")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestExtractCommandOutFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "chunks.yaml")

	_, err := execute(t, "1. Elevate the hand.\n", "extract", "-", "--grammar", "bare", "--format", "yaml", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "recommendation_content: Elevate the hand.")
	assert.Contains(t, string(data), "rating: C-LD")
}

func TestExtractCommandErrors(t *testing.T) {
	_, err := execute(t, "", "extract", "-", "--grammar", "html")
	assert.ErrorIs(t, err, types.ErrUnknownGrammar)

	_, err = execute(t, "", "extract", "--grammar", "table")
	assert.Error(t, err, "file argument required without --batch")
}

func TestExtractCommandBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "guidelines")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "hip.md"), []byte("| 1 | A | Operate early. |\n"), 0o644))

	out, err := execute(t, "", "extract", "--batch", "--grammar", "table",
		"--input-dir", in, "--output-dir", filepath.Join(dir, "chunks"))
	require.NoError(t, err)
	assert.Contains(t, out, "chunked hip (1 chunks)")

	_, err = os.Stat(filepath.Join(dir, "chunks", "hip-chunks.json"))
	assert.NoError(t, err)
}

func TestImportAndFetchCommands(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "records.db")
	recordsPath := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(recordsPath, []byte(`[
  {"source": "drf.pdf", "type": "recommendation", "page": "2", "category": "Therapy", "index": "0", "content": " Start motion early. "}
]`), 0o644))

	out, err := execute(t, "", "records", "import", recordsPath, "--job-id", "job-9", "--store-path", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 records under job job-9")

	outPath := filepath.Join(dir, "output_with_metadata.json")
	_, err = execute(t, "", "fetch", "job-9", "--store-path", storePath, "--out", outPath, "--disease", "Fracture, Sprain")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result types.FetchResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "job-9", result.JobID)
	assert.Equal(t, types.DefaultTitle, result.Title)
	assert.Equal(t, types.StringList{"Fracture", "Sprain"}, result.Disease)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Start motion early.", result.Recommendations[0].Content)
}

func TestFetchCommandUnknownJob(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "records.db")

	out, err := execute(t, "", "fetch", "missing", "--store-path", storePath)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFetchCommandBadDriver(t *testing.T) {
	_, err := execute(t, "", "fetch", "job", "--store-driver", "mongo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error processing data")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "guideline-chunker dev\n", out)
}
