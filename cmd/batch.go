package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screening-cli/internal/model"
)

var (
	batchFile string
	batchJSON bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [company name ...]",
	Short: "Look up many companies in one run",
	Long:  "Resolves each company independently against the same reference snapshot. Queries come from arguments or, with --file, one per line.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		queries := args
		if batchFile != "" {
			fromFile, err := readQueries(batchFile)
			if err != nil {
				return err
			}
			queries = append(queries, fromFile...)
		}
		if len(queries) == 0 {
			return eris.New("batch: no queries given")
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		audit, err := openAudit(cmd.Context())
		if err != nil {
			zap.L().Warn("audit store unavailable", zap.Error(err))
		}
		if audit != nil {
			defer audit.Close()
		}

		outcomes := make([]*model.LookupOutcome, len(queries))
		var resolved, flagged atomic.Int64

		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Batch.Concurrency)

		for i, query := range queries {
			i, query := i, query
			g.Go(func() error {
				outcome, err := eng.Lookup(query, lookupOptions(cfg.Match, 0, 0))
				if err != nil {
					return err
				}
				outcomes[i] = outcome

				if outcome.Status != model.StatusUnknown {
					resolved.Add(1)
				}
				if len(outcome.Warnings) > 0 {
					flagged.Add(1)
				}

				if audit != nil {
					if _, err := audit.RecordLookup(gctx, outcome); err != nil {
						zap.L().Warn("audit record failed",
							zap.String("query", query),
							zap.Error(err),
						)
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if batchJSON {
			return printJSON(outcomes)
		}

		for _, outcome := range outcomes {
			matched := "-"
			if outcome.BestMatch != nil {
				matched = outcome.BestMatch.Record.Name
			}
			fmt.Printf("%-40s %-12s %.2f  %s\n", outcome.Query, outcome.Status, outcome.Confidence, matched)
		}
		fmt.Printf("\n%d/%d resolved, %d with warnings\n", resolved.Load(), len(queries), flagged.Load())
		return nil
	},
}

func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	return queries, eris.Wrapf(scanner.Err(), "batch: read %s", path)
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one company name per line")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "output JSON")
	rootCmd.AddCommand(batchCmd)
}
