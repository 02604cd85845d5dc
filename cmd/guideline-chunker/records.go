// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/guideline-chunker/internal/store"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage recommendation records in the record store",
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <records.json|records.yaml>",
	Short: "Load a file of recommendation records under a job id",
	Long: `Import reads a JSON or YAML array of records (source, type, page,
category, index, content) and appends them to the record store under
--job-id. Without --job-id a new id is generated and printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsImport,
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jobID, _ := cmd.Flags().GetString("job-id")

	records, err := store.LoadRecords(args[0])
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	jobID, err = s.Import(ctx, jobID, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d records under job %s\n", len(records), jobID)
	return nil
}

func init() {
	recordsImportCmd.Flags().String("job-id", "", "job id to store the records under (default: generated)")

	recordsCmd.AddCommand(recordsImportCmd)
	rootCmd.AddCommand(recordsCmd)
}
