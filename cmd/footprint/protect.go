package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/pipeline"
)

var protectCmd = &cobra.Command{
	Use:   "protect <person-id>",
	Short: "Run the full protection pipeline for one person",
	Long:  "Scans every email on file for breaches and dark-web exposure, renders an exposure report, and records a pipeline run (spec §4.6).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePersonID(args[0])
		if err != nil {
			return err
		}

		p := &pipeline.Pipeline{Store: db, Config: cfg, Logger: log}
		result, err := p.ProtectPerson(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Pipeline run #%d completed: breaches=%d dark_web=%d accounts=%d risk=%d/100\n",
			result.RunID, result.BreachesFound, result.DarkWebFindings, result.AccountsFound, result.RiskScore)
		fmt.Println()
		fmt.Print(result.Report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(protectCmd)
}
