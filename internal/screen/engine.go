package screen

import (
	"sort"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/match"
	"github.com/sells-group/screening-cli/internal/model"
)

// ErrNotReady is returned when a lookup is requested before any reference
// records were ever loaded. Fatal for the caller; never retried internally.
var ErrNotReady = eris.New("screen: company records not loaded")

const (
	// DefaultThreshold is the minimum similarity score for a fuzzy match.
	DefaultThreshold = 80.0
	// DefaultMaxResults caps the candidate list returned per lookup.
	DefaultMaxResults = 5
	// ApprovalConfidence is the minimum confidence for the boolean
	// IsApproved / IsBlocked answers.
	ApprovalConfidence = 0.8
)

// Engine answers whitelist/blacklist lookups against an immutable snapshot
// of the reference list. Swap replaces the whole snapshot atomically, so
// in-flight lookups keep the collection they started with and never observe
// a partially updated list.
type Engine struct {
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	records []model.CompanyRecord
}

// New creates an Engine with no records loaded. Call Swap before Lookup.
func New() *Engine {
	return &Engine{}
}

// Swap installs a new reference snapshot. The input is copied; the caller
// may reuse its slice.
func (e *Engine) Swap(records []model.CompanyRecord) {
	recs := make([]model.CompanyRecord, len(records))
	copy(recs, records)
	e.snap.Store(&snapshot{records: recs})

	zap.L().Info("screen: record snapshot swapped", zap.Int("records", len(recs)))
}

// Ready reports whether a snapshot has ever been loaded. An empty snapshot
// counts as ready: lookups against it resolve to Unknown, not an error.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// LookupOptions tunes a single lookup. Zero values fall back to the
// package defaults.
type LookupOptions struct {
	Threshold             float64
	MaxResults            int
	IncludeBelowThreshold bool
}

// Lookup resolves a company name to a status, confidence and ranked
// candidate list. An unmatched query is a normal outcome (Unknown,
// confidence 0), not an error.
func (e *Engine) Lookup(query string, opts LookupOptions) (*model.LookupOutcome, error) {
	snap := e.snap.Load()
	if snap == nil {
		return nil, ErrNotReady
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	// Over-fetch so the below-threshold group stays visible after the
	// above-threshold group is truncated.
	searchThreshold := threshold
	if opts.IncludeBelowThreshold {
		searchThreshold = 0
	}
	candidates := match.FindMatches(query, snap.records, searchThreshold, maxResults*2, false)

	var above, below []model.MatchCandidate
	for _, c := range candidates {
		if c.Score >= threshold {
			above = append(above, c)
		} else {
			below = append(below, c)
		}
	}

	status, confidence, warnings := Resolve(query, above, threshold)

	all := above
	if len(all) > maxResults {
		all = all[:maxResults:maxResults]
	}
	if opts.IncludeBelowThreshold && len(all) < maxResults {
		if slots := maxResults - len(all); len(below) > slots {
			below = below[:slots]
		}
		all = append(all, below...)
	}

	outcome := &model.LookupOutcome{
		Query:      query,
		Status:     status,
		Confidence: confidence,
		AllMatches: all,
		Warnings:   warnings,
	}
	if len(above) > 0 {
		outcome.BestMatch = &above[0]
	}

	zap.L().Debug("screen: lookup resolved",
		zap.String("query", query),
		zap.String("status", string(status)),
		zap.Float64("confidence", confidence),
		zap.Int("matches", len(all)),
	)

	return outcome, nil
}

// IsApproved reports whether the query resolves to a whitelisted company
// with sufficient confidence.
func (e *Engine) IsApproved(query string) (bool, error) {
	outcome, err := e.Lookup(query, LookupOptions{IncludeBelowThreshold: true})
	if err != nil {
		return false, err
	}
	return outcome.Status == model.StatusWhitelisted && outcome.Confidence >= ApprovalConfidence, nil
}

// IsBlocked reports whether the query resolves to a blacklisted company
// with sufficient confidence.
func (e *Engine) IsBlocked(query string) (bool, error) {
	outcome, err := e.Lookup(query, LookupOptions{IncludeBelowThreshold: true})
	if err != nil {
		return false, err
	}
	return outcome.Status == model.StatusBlacklisted && outcome.Confidence >= ApprovalConfidence, nil
}

// List returns the current records in load order, optionally filtered by
// status. An empty filter returns everything.
func (e *Engine) List(filter model.Status) []model.CompanyRecord {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}

	if filter == "" {
		out := make([]model.CompanyRecord, len(snap.records))
		copy(out, snap.records)
		return out
	}

	var out []model.CompanyRecord
	for _, r := range snap.records {
		if r.Status == filter {
			out = append(out, r)
		}
	}
	return out
}

// Stats summarizes the current snapshot.
func (e *Engine) Stats() model.ListStats {
	stats := model.ListStats{Categories: []string{}}

	snap := e.snap.Load()
	if snap == nil {
		return stats
	}

	seen := make(map[string]bool)
	for _, r := range snap.records {
		stats.Total++
		switch r.Status {
		case model.StatusWhitelisted:
			stats.Whitelisted++
		case model.StatusBlacklisted:
			stats.Blacklisted++
		}
		if r.Category != "" && !seen[r.Category] {
			seen[r.Category] = true
			stats.Categories = append(stats.Categories, r.Category)
		}
	}
	sort.Strings(stats.Categories)

	return stats
}
