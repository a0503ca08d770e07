package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/screening-cli/internal/model"
)

var (
	listStatus string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the loaded reference companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		var filter model.Status
		if listStatus != "" {
			parsed, ok := model.ParseStatus(listStatus)
			if !ok {
				return eris.Errorf("list: unknown status %q (want whitelisted or blacklisted)", listStatus)
			}
			filter = parsed
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		records := eng.List(filter)

		if listJSON {
			return printJSON(records)
		}

		fmt.Print(renderRecords(records))
		fmt.Printf("\n%d companies\n", len(records))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (whitelisted or blacklisted)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd)
}
