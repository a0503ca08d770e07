package model

import "strings"

// Status classifies a company against the reference list.
type Status string

const (
	StatusWhitelisted Status = "whitelisted"
	StatusBlacklisted Status = "blacklisted"
	StatusUnknown     Status = "unknown"
)

// ParseStatus converts a user-supplied status string to a Status.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whitelisted", "whitelist":
		return StatusWhitelisted, true
	case "blacklisted", "blacklist":
		return StatusBlacklisted, true
	case "unknown":
		return StatusUnknown, true
	}
	return "", false
}

// CompanyRecord is one entry of the approved/denied reference list.
// Records are loaded once by the loader and treated as immutable for the
// lifetime of the snapshot they belong to.
type CompanyRecord struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// MatchCandidate is a scored reference-list entry produced for one query.
type MatchCandidate struct {
	Record  *CompanyRecord `json:"record"`
	Score   float64        `json:"score"`
	IsExact bool           `json:"is_exact"`
}

// LookupOutcome is the structured answer to a single lookup.
// AllMatches is sorted descending by score; Confidence is rounded to two
// decimals at the point of return.
type LookupOutcome struct {
	Query      string           `json:"query"`
	Status     Status           `json:"status"`
	Confidence float64          `json:"confidence"`
	BestMatch  *MatchCandidate  `json:"best_match,omitempty"`
	AllMatches []MatchCandidate `json:"all_matches"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// ListStats summarizes the loaded reference list.
type ListStats struct {
	Total       int      `json:"total"`
	Whitelisted int      `json:"whitelisted_count"`
	Blacklisted int      `json:"blacklisted_count"`
	Categories  []string `json:"categories"`
}
