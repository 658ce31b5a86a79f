package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show aggregate counts across every entity the store owns",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := db.Status(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Persons: %d\n", st.PersonsCount)
		fmt.Printf("Brokers: %d\n", st.BrokersCount)
		fmt.Printf("Breaches: %d\n", st.BreachesCount)

		fmt.Println("Findings:")
		for status, count := range st.Findings {
			fmt.Printf("  %-20s %d\n", status, count)
		}
		fmt.Println("Removals:")
		for status, count := range st.Removals {
			fmt.Printf("  %-20s %d\n", status, count)
		}

		if st.LastScan != nil {
			fmt.Printf("Last scan: %s\n", *st.LastScan)
		} else {
			fmt.Println("Last scan: never")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
