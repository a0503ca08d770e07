package screen

import (
	"fmt"
	"math"

	"github.com/sells-group/screening-cli/internal/model"
)

// Warning texts attached to lookup outcomes. Advisory only; a caller that
// ignores them still gets a correct result.
const (
	WarnNoMatches     = "no matches above threshold"
	WarnNearThreshold = "near threshold"
	WarnConflicting   = "conflicting matches"
	WarnMultipleClose = "multiple close matches"
)

// Resolve turns candidates at or above the threshold into a final status,
// confidence and warnings. Pure function; matches must be sorted descending
// by score.
//
// An exact match short-circuits with confidence 1.0 even when other
// candidates exist. Otherwise confidence starts at bestScore/100 and the
// penalties compose multiplicatively: 0.9 when the best score is within 10
// of the threshold, 0.7 when both statuses appear among the candidates, 0.9
// when the runner-up is within 5 points of the best.
func Resolve(query string, matches []model.MatchCandidate, threshold float64) (model.Status, float64, []string) {
	if len(matches) == 0 {
		return model.StatusUnknown, 0, []string{WarnNoMatches}
	}

	best := matches[0]
	if best.IsExact {
		return best.Record.Status, 1, nil
	}

	confidence := best.Score / 100
	var warnings []string

	if best.Score < threshold+10 {
		confidence *= 0.9
		warnings = append(warnings, WarnNearThreshold)
	}

	var hasWhitelisted, hasBlacklisted bool
	for _, m := range matches {
		switch m.Record.Status {
		case model.StatusWhitelisted:
			hasWhitelisted = true
		case model.StatusBlacklisted:
			hasBlacklisted = true
		}
	}
	if hasWhitelisted && hasBlacklisted {
		confidence *= 0.7
		warnings = append(warnings, WarnConflicting)
	}

	if len(matches) > 1 && best.Score-matches[1].Score < 5 {
		confidence *= 0.9
		warnings = append(warnings, WarnMultipleClose)
	}

	if best.Score < 90 {
		warnings = append(warnings, fmt.Sprintf("fuzzy match: '%s' matched to '%s'", query, best.Record.Name))
	}

	return best.Record.Status, roundConfidence(confidence), warnings
}

func roundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}
