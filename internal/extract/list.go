// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

var (
	// taggedItemRe matches "<n>. <text> lor:<code> cor:<code>". The text may
	// wrap across lines, so dot matches newline and the match is lazy up to
	// the first lor: tag.
	taggedItemRe = regexp.MustCompile(`(?ims)^[ \t]*\d+\.[ \t]+(.+?)\s+lor:\s*([a-z0-9]+)\s+cor:\s*([a-z0-9]+)`)

	// bareItemRe matches a single-line numbered item "<n>. <text>".
	bareItemRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+(.+)$`)
)

// extractTagged reads numbered items carrying inline lor/cor tags. The lor
// tag is the rating code and the cor tag is the class code.
func extractTagged(markdown string) []types.Recommendation {
	var recs []types.Recommendation
	for _, m := range taggedItemRe.FindAllStringSubmatch(markdown, -1) {
		content := strings.TrimSpace(m[1])
		if content == "" {
			continue
		}
		recs = append(recs, types.Recommendation{
			Content:    content,
			RatingCode: m[2],
			ClassCode:  m[3],
		})
	}
	return recs
}

// extractBare reads numbered items without codes and assigns the fixed
// bare-grammar codes to each.
func extractBare(markdown string) []types.Recommendation {
	var recs []types.Recommendation
	for _, m := range bareItemRe.FindAllStringSubmatch(markdown, -1) {
		content := strings.TrimSpace(m[1])
		if content == "" {
			continue
		}
		recs = append(recs, types.Recommendation{
			Content:    content,
			ClassCode:  BareClassCode,
			RatingCode: BareRatingCode,
		})
	}
	return recs
}
