package service

import (
	"regexp"
	"strconv"
	"strings"

	"storefront/internal/model"
)

// Confidence score weights. These are arbitrary tuning constants forming a
// coarse completeness heuristic, not a calibrated probability.
const (
	confidencePriceBound = 30
	confidenceCategory   = 25
	confidenceKeyword    = 20
	confidenceLongQuery  = 15 // raw query longer than 10 characters
	confidenceManyTokens = 10 // more than 2 whitespace-separated tokens
	confidenceMax        = 100
)

// Max-price and min-price patterns, in priority order: the first pattern
// that matches supplies the bound.
var (
	maxPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`under\s+\$?(\d+)`),
		regexp.MustCompile(`below\s+\$?(\d+)`),
		regexp.MustCompile(`less\s+than\s+\$?(\d+)`),
		regexp.MustCompile(`max\s+\$?(\d+)`),
	}
	minPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`over\s+\$?(\d+)`),
		regexp.MustCompile(`above\s+\$?(\d+)`),
		regexp.MustCompile(`more\s+than\s+\$?(\d+)`),
		regexp.MustCompile(`min\s+\$?(\d+)`),
	}
	// Range phrasing overrides both bounds when present.
	priceRangePattern = regexp.MustCompile(`between\s+\$?(\d+)\s+and\s+\$?(\d+)`)
)

// QueryInterpreter turns free-text queries into structured filter criteria
// using pattern-based extraction over fixed vocabularies. It holds no state;
// interpretation is pure and deterministic.
type QueryInterpreter struct{}

// NewQueryInterpreter creates a new query interpreter
func NewQueryInterpreter() *QueryInterpreter {
	return &QueryInterpreter{}
}

// Interpret extracts filter criteria from a natural language query. It is
// total over any input: absence of a signal leaves the corresponding field
// unset, and malformed text never produces an error. Matching is
// case-insensitive; the verbatim query is retained on the result.
func (qi *QueryInterpreter) Interpret(query string) *model.FilterCriteria {
	criteria := &model.FilterCriteria{OriginalQuery: query}

	lower := strings.ToLower(query)
	if strings.TrimSpace(lower) == "" {
		return criteria
	}

	criteria.MaxPrice = matchPrice(lower, maxPricePatterns)
	criteria.MinPrice = matchPrice(lower, minPricePatterns)

	// Range phrasing beats single-bound phrasing, even when a single-bound
	// signal matched elsewhere in the same text.
	if m := priceRangePattern.FindStringSubmatch(lower); m != nil {
		criteria.MinPrice = parsePrice(m[1])
		criteria.MaxPrice = parsePrice(m[2])
	}

	for _, group := range ratingGroups {
		if containsAny(lower, group.Triggers) {
			threshold := group.Threshold
			criteria.MinRating = &threshold
		}
	}

	for _, group := range categoryGroups {
		if containsAny(lower, group.Triggers) {
			criteria.Categories = append(criteria.Categories, group.Category)
		}
	}

	criteria.Keywords = matchVocabulary(lower, productKeywords)
	criteria.Colors = matchVocabulary(lower, colorKeywords)
	criteria.Sizes = matchVocabulary(lower, sizeKeywords)

	criteria.Confidence = scoreConfidence(query, criteria)

	return criteria
}

// matchPrice returns the bound captured by the first matching pattern.
func matchPrice(query string, patterns []*regexp.Regexp) *float64 {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(query); m != nil {
			return parsePrice(m[1])
		}
	}
	return nil
}

// parsePrice parses captured digits as an integer amount.
func parsePrice(digits string) *float64 {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	v := float64(n)
	return &v
}

// matchVocabulary returns every vocabulary term appearing as a substring of
// the query. Terms are unique within a table, so the result needs no
// further deduplication.
func matchVocabulary(query string, vocabulary []string) []string {
	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(query, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

func containsAny(query string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(query, trigger) {
			return true
		}
	}
	return false
}

// scoreConfidence computes the completeness score for an interpreted query.
// Deterministic given the original query text.
func scoreConfidence(query string, criteria *model.FilterCriteria) int {
	score := 0
	if criteria.MaxPrice != nil || criteria.MinPrice != nil {
		score += confidencePriceBound
	}
	if len(criteria.Categories) > 0 {
		score += confidenceCategory
	}
	if len(criteria.Keywords) > 0 {
		score += confidenceKeyword
	}
	if len(query) > 10 {
		score += confidenceLongQuery
	}
	if len(strings.Fields(query)) > 2 {
		score += confidenceManyTokens
	}
	if score > confidenceMax {
		score = confidenceMax
	}
	return score
}
