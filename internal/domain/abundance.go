package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// countTokenRe matches runs of digits and thousands separators, e.g. the
// "5,000" and "10,000" in "Low (5,000-10,000 cells/L)".
var countTokenRe = regexp.MustCompile(`[\d,]+`)

// ClassifyAbundance converts a free-text FWC abundance category into a
// representative cell count (cells/L) and a normalized status. It is total:
// any input, including empty or malformed text, yields a defined result.
//
// Rules are case-insensitive substring checks, first match wins:
//
//	"not present" / "background" → (500, safe)
//	"very low"                   → (2500, safe)
//	"low"                        → (range midpoint or 5000, caution)
//	"medium"                     → (range midpoint or 50000, avoid)
//	"high"                       → (range midpoint or 500000, avoid)
//
// A range midpoint applies only when the text carries at least two parseable
// numbers; otherwise the category default stands.
func ClassifyAbundance(text string) (int, Status) {
	if strings.TrimSpace(text) == "" {
		return 0, StatusNoData
	}

	lower := strings.ToLower(text)
	counts := extractCounts(text)

	switch {
	case strings.Contains(lower, "not present") || strings.Contains(lower, "background"):
		return 500, StatusSafe
	case strings.Contains(lower, "very low"):
		return 2500, StatusSafe
	case strings.Contains(lower, "low") && !strings.Contains(lower, "very"):
		if len(counts) >= 2 {
			return midpoint(counts[0], counts[1]), StatusCaution
		}
		return 5000, StatusCaution
	case strings.Contains(lower, "medium"):
		if len(counts) >= 2 {
			return midpoint(counts[0], counts[1]), StatusAvoid
		}
		return 50000, StatusAvoid
	case strings.Contains(lower, "high"):
		if len(counts) >= 2 {
			return midpoint(counts[0], counts[1]), StatusAvoid
		}
		return 500000, StatusAvoid
	}

	return 0, StatusNoData
}

// extractCounts pulls the parseable integers out of an abundance string in
// order of appearance. Tokens that are only separators (a stray comma) are
// dropped rather than failing the classification.
func extractCounts(text string) []int {
	tokens := countTokenRe.FindAllString(text, -1)
	counts := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(strings.ReplaceAll(tok, ",", ""))
		if err != nil {
			continue
		}
		counts = append(counts, n)
	}
	return counts
}

func midpoint(low, high int) int {
	return (low + high) / 2
}
