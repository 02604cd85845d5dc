//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Chunk converts every guideline in guidelines/ into chunks/<name>-chunks.json.
// Set GRAMMAR to table, tagged, or bare (default table).
func Chunk() error {
	mg.Deps(Init)

	grammar := os.Getenv("GRAMMAR")
	if grammar == "" {
		grammar = "table"
	}
	fmt.Printf("[chunk] converting guidelines/ with the %s grammar\n", grammar)
	return sh.RunV("go", "run", cmdPkg, "extract", "--batch",
		"--grammar", grammar, "--input-dir", "guidelines", "--output-dir", "chunks")
}
