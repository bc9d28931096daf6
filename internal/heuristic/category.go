package heuristic

import (
	"regexp"
	"strings"
)

// Primary keyword hits count three times as much as secondary ones; a page
// whose best weighted score stays under the threshold is "general".
const (
	primaryKeywordWeight   = 3.0
	secondaryKeywordWeight = 1.0
	categoryScoreThreshold = 3.0
)

// CategoryDetector assigns a topic category to page text by weighted
// keyword scoring
type CategoryDetector struct {
	table    SourceTable
	patterns map[string]categoryPatterns
}

type categoryPatterns struct {
	primary   []*regexp.Regexp
	secondary []*regexp.Regexp
}

// NewCategoryDetector compiles the keyword patterns for a source table
func NewCategoryDetector(table SourceTable) *CategoryDetector {
	d := &CategoryDetector{
		table:    table,
		patterns: make(map[string]categoryPatterns, len(table)),
	}
	for name, profile := range table {
		d.patterns[name] = categoryPatterns{
			primary:   compileKeywords(profile.PrimaryKeywords),
			secondary: compileKeywords(profile.SecondaryKeywords),
		}
	}
	return d
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(strings.ToLower(kw))+`\b`))
	}
	return out
}

// Detect returns the best-scoring category for the text. Every occurrence
// of every keyword counts; there is no deduplication across primary and
// secondary lists.
func (d *CategoryDetector) Detect(text string) string {
	best := GeneralCategory
	bestScore := 0.0

	for name, patterns := range d.patterns {
		if name == GeneralCategory {
			continue
		}
		score := 0.0
		for _, re := range patterns.primary {
			score += primaryKeywordWeight * float64(len(re.FindAllStringIndex(text, -1)))
		}
		for _, re := range patterns.secondary {
			score += secondaryKeywordWeight * float64(len(re.FindAllStringIndex(text, -1)))
		}
		score *= d.table[name].Weight

		if score > bestScore {
			best = name
			bestScore = score
		}
	}

	if bestScore < categoryScoreThreshold {
		return GeneralCategory
	}
	return best
}
