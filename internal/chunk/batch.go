// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/guideline-chunker/internal/extract"
	"github.com/pdiddy/guideline-chunker/internal/logger"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

const chunkSuffix = "-chunks.json"

// ResolveMetadata layers metadata sources: override (usually CLI flags)
// wins over the document front matter, which wins over configured
// defaults, which win over the built-in defaults.
func ResolveMetadata(override, document, defaults types.Metadata) types.Metadata {
	return override.Merge(document).Merge(defaults).Merge(types.DefaultMetadata())
}

// Build extracts the recommendations of doc and assembles them into chunks.
// A document without recommendations yields an empty slice.
func Build(doc *Document, cfg types.ExtractionConfig, override types.Metadata) ([]types.Chunk, error) {
	ex, err := extract.New(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	meta := ResolveMetadata(override, doc.Metadata, cfg.Defaults)
	recs := ex.Extract(doc.Body)
	logger.Debug("%s: %d recommendations matched by %s grammar", doc.Path, len(recs), ex.Grammar())
	return Assemble(meta, recs, cfg.CodeTables()), nil
}

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of documents seen.
func (s BatchSummary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ProcessAll converts every Markdown file in cfg.InputDir into
// cfg.OutputDir/<name>-chunks.json. Files whose output is newer than the
// source are skipped. A failing document is reported on w and counted; it
// does not stop the run.
func ProcessAll(cfg types.BatchConfig, override types.Metadata, w io.Writer) (BatchSummary, error) {
	if err := cfg.Validate(); err != nil {
		return BatchSummary{}, fmt.Errorf("invalid batch config: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		mdPath := filepath.Join(cfg.InputDir, entry.Name())
		outPath := filepath.Join(cfg.OutputDir, name+chunkSuffix)

		changed, err := hasChanged(mdPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		doc, err := LoadDocument(mdPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		chunks, err := Build(doc, cfg.ExtractionConfig, override)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := WriteFile(outPath, chunks, FormatJSON); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "chunked %s (%d chunks)\n", name, len(chunks))
		summary.Processed++
	}

	fmt.Fprintf(w, "\nprocessed: %d, skipped: %d, failed: %d\n",
		summary.Processed, summary.Skipped, summary.Failed)

	return summary, nil
}

// hasChanged reports whether the Markdown file is newer than its output.
// A missing output counts as changed.
func hasChanged(mdPath, outPath string) (bool, error) {
	mdInfo, err := os.Stat(mdPath)
	if err != nil {
		return false, fmt.Errorf("stat markdown %s: %w", mdPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return mdInfo.ModTime().After(outInfo.ModTime()), nil
}
