// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/guideline-chunker/internal/chunk"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file.md | -]",
	Short: "Extract recommendation chunks from guideline Markdown",
	Long: `Extract reads a guideline Markdown document and writes one normalized
chunk per recommendation as a JSON array.

The --grammar flag selects the document layout:
  table   rows "| COR | LOE | Recommendation |" (header and separator skipped)
  tagged  numbered items "1. text lor:A cor:2" (lor A-D, cor 1-3)
  bare    numbered items "1. text" (class 1, rating C-LD)

Metadata comes from flags, then YAML front matter, then the config file's
defaults section, then built-in defaults. Use "-" to read from stdin.
With --batch every .md file in --input-dir is converted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := extractionConfig()
	if err != nil {
		return err
	}
	override := metadataFromFlags(cmd)

	batch, _ := cmd.Flags().GetBool("batch")
	if batch {
		return runExtractBatch(cmd, cfg, override)
	}
	if len(args) == 0 {
		return fmt.Errorf("a Markdown file (or - for stdin) is required unless --batch is set")
	}

	doc, err := loadDocument(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	chunks, err := chunk.Build(doc, cfg, override)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		fmt.Fprintf(os.Stderr, "No recommendations found in %s using the %s grammar.\n", doc.Path, cfg.Grammar)
	}

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return chunk.Write(cmd.OutOrStdout(), chunks, chunk.Format(format))
	}
	if err := chunk.WriteFile(out, chunks, chunk.Format(format)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d chunks to %s\n", len(chunks), out)
	return nil
}

func runExtractBatch(cmd *cobra.Command, cfg types.ExtractionConfig, override types.Metadata) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	summary, err := chunk.ProcessAll(types.BatchConfig{
		ExtractionConfig: cfg,
		InputDir:         inputDir,
		OutputDir:        outputDir,
	}, override, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed", summary.Failed)
	}
	return nil
}

// loadDocument reads path, or stdin when path is "-".
func loadDocument(path string, stdin io.Reader) (*chunk.Document, error) {
	if path != "-" {
		return chunk.LoadDocument(path)
	}
	source, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	doc, err := chunk.ParseDocument(source)
	if err != nil {
		return nil, err
	}
	doc.Path = "stdin"
	return doc, nil
}

func init() {
	extractCmd.Flags().String("grammar", string(types.GrammarTable), "recommendation layout: table, tagged, or bare")
	extractCmd.Flags().String("out", "", "output file (default stdout)")
	extractCmd.Flags().String("format", string(chunk.FormatJSON), "output format: json or yaml")
	extractCmd.Flags().Bool("batch", false, "convert every .md file in --input-dir")
	extractCmd.Flags().String("input-dir", "guidelines", "directory of guideline Markdown for --batch")
	extractCmd.Flags().String("output-dir", "chunks", "directory for <name>-chunks.json files in --batch")
	addMetadataFlags(extractCmd)

	mustBind("grammar", extractCmd.Flags().Lookup("grammar"))

	rootCmd.AddCommand(extractCmd)
}
