package match

import (
	"math"
	"strings"
	"unicode/utf8"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// signalWeights blends the five similarity signals. Each row sums to 1.0.
type signalWeights struct {
	ratio       float64
	partial     float64
	tokenSort   float64
	tokenSet    float64
	containment float64
}

var (
	// Very short queries: trust substring alignment more.
	shortQueryWeights = signalWeights{0.10, 0.40, 0.20, 0.20, 0.10}
	// Single-word queries: balance substring and token matching.
	singleTokenWeights = signalWeights{0.15, 0.30, 0.25, 0.20, 0.10}
	// Multi-word queries: trust token-based matching.
	multiTokenWeights = signalWeights{0.10, 0.20, 0.30, 0.30, 0.10}
)

// Score computes a blended similarity between two company names on a 0-100
// scale. Pure and deterministic; returns 0 when either side normalizes to
// the empty string and 100 when both normalize to the same string.
//
// A near-complete prefix relationship (e.g. an abbreviated form against the
// full name) short-circuits before the token signals so it is not diluted
// through the blend. That means a short abbreviation can occasionally outrank
// a better token-based match against an unrelated longer name; flagged for
// product review, kept as-is.
func Score(query, target string) float64 {
	normQuery := Normalize(query)
	normTarget := Normalize(target)

	if normQuery == "" || normTarget == "" {
		return 0
	}
	if normQuery == normTarget {
		return 100
	}

	if strings.HasPrefix(normTarget, normQuery) || strings.HasPrefix(normQuery, normTarget) {
		qLen := float64(utf8.RuneCountInString(normQuery))
		tLen := float64(utf8.RuneCountInString(normTarget))
		prefixScore := math.Min(qLen, tLen) / math.Max(qLen, tLen) * 95
		if prefixScore >= 85 {
			return prefixScore
		}
	}

	queryTokens := tokenSet(normQuery)
	targetTokens := tokenSet(normTarget)

	// Fraction of query tokens that appear in the target.
	containment := 0.0
	if len(queryTokens) > 0 {
		shared := 0
		for tok := range queryTokens {
			if targetTokens[tok] {
				shared++
			}
		}
		containment = float64(shared) / float64(len(queryTokens)) * 100
	}

	ratio := float64(fuzzy.Ratio(normQuery, normTarget))
	partial := float64(fuzzy.PartialRatio(normQuery, normTarget))
	sortRatio := float64(fuzzy.TokenSortRatio(normQuery, normTarget))
	setRatio := float64(fuzzy.TokenSetRatio(normQuery, normTarget))

	w := multiTokenWeights
	switch {
	case utf8.RuneCountInString(normQuery) <= 4:
		w = shortQueryWeights
	case len(queryTokens) == 1:
		w = singleTokenWeights
	}

	score := ratio*w.ratio +
		partial*w.partial +
		sortRatio*w.tokenSort +
		setRatio*w.tokenSet +
		containment*w.containment

	// A query fully contained in the target is a strong signal the
	// character-level ratios undercount.
	if containment >= 100 && score < 90 {
		score = math.Max(score, 88)
	} else if containment >= 50 && score < 80 {
		score += math.Min(10, (containment-50)*0.2)
	}

	return math.Min(100, math.Max(0, score))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
