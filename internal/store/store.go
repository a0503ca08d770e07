package store

import (
	"context"
	"time"

	"github.com/sells-group/screening-cli/internal/model"
)

// AuditEntry is one persisted lookup outcome. Low-confidence and conflicting
// results land here so a human reviewer can act on them later.
type AuditEntry struct {
	ID         string       `json:"id"`
	Query      string       `json:"query"`
	Status     model.Status `json:"status"`
	Confidence float64      `json:"confidence"`
	BestMatch  string       `json:"best_match,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AuditStore persists lookup outcomes. The screening engine itself never
// touches this; recording is wired in by the CLI/server layer.
type AuditStore interface {
	RecordLookup(ctx context.Context, outcome *model.LookupOutcome) (*AuditEntry, error)
	ListLookups(ctx context.Context, limit int) ([]AuditEntry, error)
	Migrate(ctx context.Context) error
	Close() error
}
