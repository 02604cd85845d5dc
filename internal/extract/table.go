// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/guideline-chunker/pkg/types"
)

// separatorCellRe matches a Markdown table alignment cell like "---" or ":--:".
var separatorCellRe = regexp.MustCompile(`^:?-+:?$`)

// Header labels of the class and rating columns, compared case-insensitively.
const (
	classHeader  = "cor"
	ratingHeader = "loe"
)

// extractTable reads rows of the form "| class | rating | content |".
// Rows need exactly three non-empty cells; header and separator rows are
// skipped along with anything else that does not fit.
func extractTable(markdown string) []types.Recommendation {
	var recs []types.Recommendation
	for _, line := range strings.Split(markdown, "\n") {
		cells, ok := splitRow(line)
		if !ok || len(cells) != 3 {
			continue
		}
		if !allNonEmpty(cells) || isSeparatorRow(cells) || isHeaderRow(cells) {
			continue
		}
		recs = append(recs, types.Recommendation{
			ClassCode:  cells[0],
			RatingCode: cells[1],
			Content:    cells[2],
		})
	}
	return recs
}

// splitRow trims the outer pipes of a table line and returns its trimmed
// cells. Lines without a pipe are not table rows.
func splitRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return nil, false
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

func allNonEmpty(cells []string) bool {
	for _, c := range cells {
		if c == "" {
			return false
		}
	}
	return true
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

func isHeaderRow(cells []string) bool {
	return strings.EqualFold(cells[0], classHeader) && strings.EqualFold(cells[1], ratingHeader)
}
