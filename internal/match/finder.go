package match

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screening-cli/internal/model"
)

// FindMatches scores the query against every record and returns at most
// maxResults candidates, best first. Candidates at or above the threshold
// always come before below-threshold candidates, which are only included
// when includeBelowThreshold is set and slots remain. Ties keep the original
// record order. An empty query or record set yields an empty result; this
// layer never fails.
//
// A literal case-insensitive match on the raw names scores exactly 100 and
// bypasses the blended formula.
func FindMatches(query string, records []model.CompanyRecord, threshold float64, maxResults int, includeBelowThreshold bool) []model.MatchCandidate {
	if strings.TrimSpace(query) == "" || len(records) == 0 || maxResults <= 0 {
		return nil
	}

	var above, below []model.MatchCandidate
	for i := range records {
		rec := &records[i]

		if strings.EqualFold(strings.TrimSpace(query), strings.TrimSpace(rec.Name)) {
			above = append(above, model.MatchCandidate{Record: rec, Score: 100, IsExact: true})
			continue
		}

		score := round2(Score(query, rec.Name))
		if score >= threshold {
			above = append(above, model.MatchCandidate{Record: rec, Score: score})
		} else if includeBelowThreshold {
			below = append(below, model.MatchCandidate{Record: rec, Score: score})
		}
	}

	sortByScore(above)
	matches := above
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	if includeBelowThreshold && len(matches) < maxResults {
		sortByScore(below)
		if slots := maxResults - len(matches); len(below) > slots {
			below = below[:slots]
		}
		matches = append(matches, below...)
	}

	return matches
}

// FindBestMatch returns the single best candidate, or nil when nothing
// reaches the threshold.
func FindBestMatch(query string, records []model.CompanyRecord, threshold float64) *model.MatchCandidate {
	matches := FindMatches(query, records, threshold, 1, false)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// BatchMatch resolves each query independently against the same record set.
// Queries share only the immutable records and each writes to its own result
// slot, so the fan-out needs no cross-query synchronization.
func BatchMatch(ctx context.Context, queries []string, records []model.CompanyRecord, threshold float64, concurrency int) map[string]*model.MatchCandidate {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([]*model.MatchCandidate, len(queries))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			results[i] = FindBestMatch(query, records, threshold)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]*model.MatchCandidate, len(queries))
	for i, query := range queries {
		out[query] = results[i]
	}
	return out
}

// SuggestThreshold returns an advisory threshold for a query: shorter names
// need a higher bar to avoid false positives. Not enforced by the finder.
func SuggestThreshold(query string) float64 {
	switch n := utf8.RuneCountInString(Normalize(query)); {
	case n < 5:
		return 90
	case n < 10:
		return 85
	default:
		return 80
	}
}

func sortByScore(candidates []model.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
