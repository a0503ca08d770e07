package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <company name>",
	Short: "Quick approved/blocked answer for a company",
	Long:  "Prints \"approved\" or \"blocked\" when the company resolves with confidence >= 0.8, otherwise \"review\".",
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

		approved, err := eng.IsApproved(query)
		if err != nil {
			return err
		}
		blocked, err := eng.IsBlocked(query)
		if err != nil {
			return err
		}

		switch {
		case approved:
			fmt.Println("approved")
		case blocked:
			fmt.Println("blocked")
		default:
			fmt.Println("review")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
