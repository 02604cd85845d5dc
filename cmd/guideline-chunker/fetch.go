// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/guideline-chunker/internal/chunk"
	"github.com/pdiddy/guideline-chunker/internal/fetch"
	"github.com/pdiddy/guideline-chunker/internal/store"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <job-id>",
	Short: "Fetch a job's recommendation records with guideline metadata",
	Long: `Fetch looks up every recommendation record stored under a job id and
writes them, together with the guideline title, stage, disease, and
specialty, as one JSON document.

A job with no records prints a notice and writes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	meta := metadataFromFlags(cmd).Merge(configDefaults()).Merge(types.DefaultMetadata())

	fmt.Fprintln(os.Stderr, "Connecting to record store...")
	s, err := store.Open(ctx, storeConfig())
	if err != nil {
		return fmt.Errorf("error processing data: %w", err)
	}
	defer s.Close()

	result, err := fetch.Fetch(ctx, s, args[0], meta)
	if errors.Is(err, fetch.ErrNoRecords) {
		fmt.Fprintf(os.Stderr, "No recommendations found for job %s.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("error processing data: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Fetched %d recommendations.\n", len(result.Recommendations))

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return chunk.Write(cmd.OutOrStdout(), result, chunk.FormatJSON)
	}
	if err := chunk.WriteFile(out, result, chunk.FormatJSON); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	return nil
}

func init() {
	fetchCmd.Flags().String("out", "", "output file, e.g. output_with_metadata.json (default stdout)")
	addMetadataFlags(fetchCmd)

	rootCmd.AddCommand(fetchCmd)
}
