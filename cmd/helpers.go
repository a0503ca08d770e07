package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/loader"
	"github.com/sells-group/screening-cli/internal/screen"
	"github.com/sells-group/screening-cli/internal/store"
)

// newEngine loads the reference workbook and returns a ready engine.
func newEngine() (*screen.Engine, error) {
	if cfg.Lists.Path == "" {
		return nil, eris.New("lists.path is required (set SCREEN_LISTS_PATH or config.yaml)")
	}

	records, err := loader.LoadFile(cfg.Lists.Path, loaderOptions(cfg.Lists))
	if err != nil {
		return nil, err
	}

	eng := screen.New()
	eng.Swap(records)
	return eng, nil
}

func loaderOptions(lists config.ListsConfig) loader.Options {
	return loader.Options{
		WhitelistSheet: lists.WhitelistSheet,
		BlacklistSheet: lists.BlacklistSheet,
		NameColumn:     lists.NameColumn,
		CategoryColumn: lists.CategoryColumn,
		NotesColumn:    lists.NotesColumn,
	}
}

// lookupOptions builds per-lookup options from config, with flag overrides
// applied when set.
func lookupOptions(m config.MatchConfig, flagThreshold float64, flagMax int) screen.LookupOptions {
	opts := screen.LookupOptions{
		Threshold:             m.Threshold,
		MaxResults:            m.MaxResults,
		IncludeBelowThreshold: m.IncludeBelowThreshold,
	}
	if flagThreshold > 0 {
		opts.Threshold = flagThreshold
	}
	if flagMax > 0 {
		opts.MaxResults = flagMax
	}
	return opts
}

// openAudit opens the lookup audit store, or returns nil when disabled.
func openAudit(ctx context.Context) (store.AuditStore, error) {
	if cfg.Store.AuditPath == "" {
		return nil, nil
	}

	s, err := store.NewSQLite(cfg.Store.AuditPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
