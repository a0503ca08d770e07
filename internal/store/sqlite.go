package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/screening-cli/internal/model"
)

// SQLiteStore implements AuditStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS lookups (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	status     TEXT NOT NULL,
	confidence REAL NOT NULL,
	best_match TEXT,
	warnings   TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_lookups_status ON lookups(status);
CREATE INDEX IF NOT EXISTS idx_lookups_query ON lookups(query);
CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordLookup persists one lookup outcome.
func (s *SQLiteStore) RecordLookup(ctx context.Context, outcome *model.LookupOutcome) (*AuditEntry, error) {
	entry := &AuditEntry{
		ID:         uuid.New().String(),
		Query:      outcome.Query,
		Status:     outcome.Status,
		Confidence: outcome.Confidence,
		Warnings:   outcome.Warnings,
		CreatedAt:  time.Now().UTC(),
	}
	if outcome.BestMatch != nil {
		entry.BestMatch = outcome.BestMatch.Record.Name
	}

	warningsJSON, err := json.Marshal(entry.Warnings)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal warnings")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lookups (id, query, status, confidence, best_match, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Query, string(entry.Status), entry.Confidence,
		entry.BestMatch, string(warningsJSON), entry.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert lookup")
	}

	return entry, nil
}

// ListLookups returns the most recent lookups, newest first.
func (s *SQLiteStore) ListLookups(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, status, confidence, best_match, warnings, created_at
		 FROM lookups ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list lookups")
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry        AuditEntry
			status       string
			bestMatch    sql.NullString
			warningsJSON sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Query, &status, &entry.Confidence,
			&bestMatch, &warningsJSON, &entry.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lookup")
		}
		entry.Status = model.Status(status)
		entry.BestMatch = bestMatch.String
		if warningsJSON.Valid && warningsJSON.String != "" {
			if err := json.Unmarshal([]byte(warningsJSON.String), &entry.Warnings); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal warnings")
			}
		}
		entries = append(entries, entry)
	}

	return entries, eris.Wrap(rows.Err(), "sqlite: list lookups iterate")
}
