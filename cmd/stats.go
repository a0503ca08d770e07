package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the loaded reference lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		stats := eng.Stats()

		if statsJSON {
			return printJSON(stats)
		}

		fmt.Print(renderStats(stats))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output JSON")
	rootCmd.AddCommand(statsCmd)
}
