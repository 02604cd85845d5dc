// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds clinical recommendations in guideline Markdown.
// Each supported layout is a Grammar; the caller chooses one and the
// Extractor applies only that grammar to the whole document.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// Codes assigned to every recommendation matched by the bare grammar,
// which carries no codes of its own.
const (
	BareClassCode  = "1"
	BareRatingCode = "C-LD"
)

// Extractor turns Markdown text into recommendations using one grammar.
// It holds no mutable state and is safe to reuse.
type Extractor struct {
	grammar types.Grammar
}

// New returns an Extractor for the given grammar.
func New(g types.Grammar) (*Extractor, error) {
	parsed, err := types.ParseGrammar(string(g))
	if err != nil {
		return nil, err
	}
	return &Extractor{grammar: parsed}, nil
}

// Grammar reports the grammar this extractor applies.
func (e *Extractor) Grammar() types.Grammar {
	return e.grammar
}

// Extract returns the recommendations found in markdown, in document order.
// Input with no matches, including empty input, yields an empty slice.
// Rows that do not fit the grammar are skipped.
func (e *Extractor) Extract(markdown string) []types.Recommendation {
	if strings.TrimSpace(markdown) == "" {
		return []types.Recommendation{}
	}

	var recs []types.Recommendation
	switch e.grammar {
	case types.GrammarTable:
		recs = extractTable(markdown)
	case types.GrammarTagged:
		recs = extractTagged(markdown)
	case types.GrammarBare:
		recs = extractBare(markdown)
	default:
		panic(fmt.Sprintf("extract: unhandled grammar %q", e.grammar))
	}

	if recs == nil {
		return []types.Recommendation{}
	}
	return recs
}
