package main

import (
	"fmt"
	"strings"

	"github.com/sells-group/screening-cli/internal/model"
)

// renderOutcome formats a lookup outcome for the terminal.
func renderOutcome(outcome *model.LookupOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Query:      %s\n", outcome.Query)
	fmt.Fprintf(&b, "Status:     %s\n", outcome.Status)
	fmt.Fprintf(&b, "Confidence: %.2f\n", outcome.Confidence)

	if outcome.BestMatch != nil {
		fmt.Fprintf(&b, "Best match: %s (score %.2f", outcome.BestMatch.Record.Name, outcome.BestMatch.Score)
		if outcome.BestMatch.IsExact {
			b.WriteString(", exact")
		}
		b.WriteString(")\n")
	}

	if len(outcome.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range outcome.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if len(outcome.AllMatches) > 0 {
		b.WriteString("Matches:\n")
		for i, m := range outcome.AllMatches {
			fmt.Fprintf(&b, "  %d. %-40s %-12s %6.2f\n", i+1, m.Record.Name, m.Record.Status, m.Score)
		}
	}

	return b.String()
}

// renderRecords formats reference records as a table.
func renderRecords(records []model.CompanyRecord) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%-40s %-12s %-20s %s\n", r.Name, r.Status, r.Category, r.Notes)
	}
	return b.String()
}

// renderStats formats list statistics.
func renderStats(stats model.ListStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total:       %d\n", stats.Total)
	fmt.Fprintf(&b, "Whitelisted: %d\n", stats.Whitelisted)
	fmt.Fprintf(&b, "Blacklisted: %d\n", stats.Blacklisted)
	if len(stats.Categories) > 0 {
		fmt.Fprintf(&b, "Categories:  %s\n", strings.Join(stats.Categories, ", "))
	}
	return b.String()
}
