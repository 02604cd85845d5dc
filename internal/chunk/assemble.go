// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk turns extracted recommendations into the flat chunk records
// consumed by downstream indexing, and handles the files on either side:
// guideline documents going in and chunk arrays coming out.
package chunk

import (
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// Assemble produces one chunk per recommendation, in input order. Every
// chunk carries its own copy of the metadata lists. Codes are resolved
// through codes; nothing is deduplicated or validated.
func Assemble(meta types.Metadata, recs []types.Recommendation, codes types.CodeTables) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(recs))
	for _, rec := range recs {
		chunks = append(chunks, types.Chunk{
			Title:                 meta.Title,
			GuideTitle:            meta.Title,
			SubCategory:           []string{},
			Stage:                 listField(meta.Stage),
			Disease:               listField(meta.Disease),
			Specialty:             listField(meta.Specialty),
			Rationales:            []string{},
			References:            []string{},
			RecommendationContent: rec.Content,
			RecommendationClass:   codes.ResolveClass(rec.ClassCode),
			Rating:                codes.ResolveRating(rec.RatingCode),
		})
	}
	return chunks
}

// listField normalizes a metadata list and returns a fresh, non-nil slice
// so chunks never share backing arrays and always encode as JSON arrays.
func listField(l types.StringList) []string {
	norm := types.SplitList([]string(l))
	out := make([]string, len(norm))
	copy(out, norm)
	return out
}
