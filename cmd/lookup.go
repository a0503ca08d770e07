package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/match"
)

var (
	lookupThreshold float64
	lookupMax       int
	lookupJSON      bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <company name>",
	Short: "Look up a company against the reference list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		if query == "" {
			return fmt.Errorf("company name must not be blank")
		}

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		outcome, err := eng.Lookup(query, lookupOptions(cfg.Match, lookupThreshold, lookupMax))
		if err != nil {
			return err
		}

		if audit, err := openAudit(cmd.Context()); err != nil {
			zap.L().Warn("audit store unavailable", zap.Error(err))
		} else if audit != nil {
			defer audit.Close()
			if _, err := audit.RecordLookup(cmd.Context(), outcome); err != nil {
				zap.L().Warn("audit record failed", zap.Error(err))
			}
		}

		if lookupJSON {
			return printJSON(outcome)
		}

		fmt.Print(renderOutcome(outcome))
		if lookupThreshold == 0 {
			if suggested := match.SuggestThreshold(query); suggested != cfg.Match.Threshold {
				fmt.Printf("Hint: suggested threshold for this query is %.0f\n", suggested)
			}
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().Float64Var(&lookupThreshold, "threshold", 0, "minimum similarity score 0-100 (default from config)")
	lookupCmd.Flags().IntVar(&lookupMax, "max", 0, "maximum number of matches (default from config)")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output JSON")
	rootCmd.AddCommand(lookupCmd)
}
