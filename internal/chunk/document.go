// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import (
	"bytes"
	"fmt"
	"os"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// Document is a guideline Markdown file split into its optional front
// matter metadata and the body the extractor reads.
type Document struct {
	Path     string
	Metadata types.Metadata
	Body     string
}

// LoadDocument reads a guideline Markdown file from disk.
func LoadDocument(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guideline %s: %w", path, err)
	}
	doc, err := ParseDocument(source)
	if err != nil {
		return nil, fmt.Errorf("parsing guideline %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// ParseDocument splits source into front matter and body. Front matter is
// optional; title, stage, disease and specialty are read from it when
// present and the list fields accept comma-separated strings.
func ParseDocument(source []byte) (*Document, error) {
	var meta types.Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return &Document{
		Metadata: meta,
		Body:     string(body),
	}, nil
}
