// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// Grammar names the Markdown shape a guideline document uses to list its
// recommendations. The set is closed; callers pick one explicitly.
type Grammar string

const (
	// GrammarTable matches pipe-delimited rows: class | rating | content.
	GrammarTable Grammar = "table"

	// GrammarTagged matches numbered items carrying inline lor:/cor: tags.
	GrammarTagged Grammar = "tagged"

	// GrammarBare matches numbered items without any codes.
	GrammarBare Grammar = "bare"
)

// Grammars lists every supported grammar in display order.
var Grammars = []Grammar{GrammarTable, GrammarTagged, GrammarBare}

// ErrUnknownGrammar is returned when a grammar name is not one of Grammars.
var ErrUnknownGrammar = errors.New("unknown grammar")

// ParseGrammar resolves a case-insensitive grammar name.
func ParseGrammar(name string) (Grammar, error) {
	g := Grammar(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Grammars {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w %q: use table, tagged, or bare", ErrUnknownGrammar, name)
}

// Recommendation is a single recommendation as it appears in the source
// document. The codes are the raw tokens, before any code-table lookup.
type Recommendation struct {
	// Content is the recommendation text, whitespace-trimmed.
	Content string `json:"content" yaml:"content"`

	// ClassCode is the raw strength-of-recommendation token (e.g. "1", "2a").
	ClassCode string `json:"class_code" yaml:"class_code"`

	// RatingCode is the raw level-of-evidence token (e.g. "A", "C-LD").
	RatingCode string `json:"rating_code" yaml:"rating_code"`
}

// CodeTables maps raw class and rating codes to the values written into
// chunks. A nil map passes codes through unchanged. Lookups are
// case-insensitive; unknown codes resolve to the matching default.
type CodeTables struct {
	Class         map[string]string `json:"class,omitempty" yaml:"class,omitempty"`
	Rating        map[string]string `json:"rating,omitempty" yaml:"rating,omitempty"`
	DefaultClass  string            `json:"default_class,omitempty" yaml:"default_class,omitempty"`
	DefaultRating string            `json:"default_rating,omitempty" yaml:"default_rating,omitempty"`
}

// ResolveClass returns the chunk class label for a raw class code.
func (t CodeTables) ResolveClass(code string) string {
	return lookup(t.Class, code, t.DefaultClass)
}

// ResolveRating returns the chunk rating for a raw rating code.
func (t CodeTables) ResolveRating(code string) string {
	return lookup(t.Rating, code, t.DefaultRating)
}

func lookup(table map[string]string, code, fallback string) string {
	if table == nil {
		return code
	}
	key := strings.ToUpper(strings.TrimSpace(code))
	for k, v := range table {
		if strings.ToUpper(k) == key {
			return v
		}
	}
	return fallback
}

// TaggedCodeTables returns the lookup tables for the tagged grammar:
// lor letters A-D are rating grades, cor digits 1-3 are confidence labels.
func TaggedCodeTables() CodeTables {
	return CodeTables{
		Rating: map[string]string{
			"A": "A",
			"B": "B",
			"C": "C",
			"D": "D",
		},
		Class: map[string]string{
			"1": "High Confidence",
			"2": "Moderate Confidence",
			"3": "Low Confidence",
		},
		DefaultRating: "C",
		DefaultClass:  "Low Confidence",
	}
}

// PassThroughCodeTables returns tables that keep raw codes unchanged.
func PassThroughCodeTables() CodeTables {
	return CodeTables{}
}

// CodeTablesFor returns the default code tables for a grammar.
func CodeTablesFor(g Grammar) CodeTables {
	if g == GrammarTagged {
		return TaggedCodeTables()
	}
	return PassThroughCodeTables()
}

// Chunk is one normalized recommendation record ready for indexing. The
// JSON keys are fixed by downstream consumers.
type Chunk struct {
	Title                 string   `json:"title" yaml:"title"`
	GuideTitle            string   `json:"guide_title" yaml:"guide_title"`
	SubCategory           []string `json:"subCategory" yaml:"subCategory"`
	Stage                 []string `json:"stage" yaml:"stage"`
	Disease               []string `json:"disease" yaml:"disease"`
	Specialty             []string `json:"specialty" yaml:"specialty"`
	Rationales            []string `json:"rationales" yaml:"rationales"`
	References            []string `json:"references" yaml:"references"`
	RecommendationContent string   `json:"recommendation_content" yaml:"recommendation_content"`
	RecommendationClass   string   `json:"recommendation_class" yaml:"recommendation_class"`
	Rating                string   `json:"rating" yaml:"rating"`
}
