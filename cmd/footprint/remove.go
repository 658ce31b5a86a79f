package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/removal"
	"github.com/untoldecay/footprint/internal/removal/email"
)

var removeCmd = &cobra.Command{
	Use:   "remove <person-id> <broker-slug>",
	Short: "Submit an opt-out removal request to one broker",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePersonID(args[0])
		if err != nil {
			return err
		}

		orch := &removal.Orchestrator{
			Store: db,
			EmailConfig: email.Config{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				User:     cfg.SMTPUser,
				Password: cfg.SMTPPassword,
			},
		}

		outcome, err := orch.SubmitRemoval(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("status=%s method=%s\n", outcome.Status, outcome.Method)
		if outcome.ReferenceID != "" {
			fmt.Printf("reference=%s\n", outcome.ReferenceID)
		}
		if outcome.Message != "" {
			fmt.Println(outcome.Message)
		}
		if outcome.Instructions != "" {
			fmt.Println()
			fmt.Print(outcome.Instructions)
		}
		return nil
	},
}

var removeStatusCmd = &cobra.Command{
	Use:   "status <person-id>",
	Short: "Summarize a person's removal requests by status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePersonID(args[0])
		if err != nil {
			return err
		}

		orch := &removal.Orchestrator{Store: db}
		summary, err := orch.Status(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%d removal(s) on file\n", summary.Total)
		for status, count := range summary.ByStatus {
			fmt.Printf("  %-24s %d\n", status, count)
		}
		for _, r := range summary.Removals {
			fmt.Printf("  #%d broker=%d method=%-10s status=%s attempts=%d\n", r.ID, r.BrokerID, r.Method, r.Status, r.Attempts)
		}
		return nil
	},
}

func init() {
	removeCmd.AddCommand(removeStatusCmd)
	rootCmd.AddCommand(removeCmd)
}
