package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/removal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-scan every removal due for verification",
	Long:  "Processes removals with status=submitted and next_check_at in the past, ordered by next_check_at ascending (spec §4.5).",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := &verify.Verifier{Store: db}
		results, err := v.VerifyPending(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No removals due for verification.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("removal #%d -> %s", r.RemovalID, r.Status)
			if r.Message != "" {
				fmt.Printf(" (%s)", r.Message)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
