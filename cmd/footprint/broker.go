package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/registry"
	"github.com/untoldecay/footprint/internal/store"
)

var brokerCmd = &cobra.Command{
	Use:   "broker",
	Short: "Manage the broker registry",
}

var brokerLoadDir string

var brokerLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load broker definitions from a directory of YAML files",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := registry.LoadAll(cmd.Context(), db, brokerLoadDir)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d broker(s) from %s\n", result.Loaded, brokerLoadDir)
		for _, msg := range result.Errors {
			fmt.Printf("  skipped: %s\n", msg)
		}
		return nil
	},
}

var (
	brokerListCategory   string
	brokerListDifficulty string
)

var brokerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered brokers",
	RunE: func(cmd *cobra.Command, args []string) error {
		brokers, err := db.ListBrokers(cmd.Context(), store.BrokerFilter{
			Category:   brokerListCategory,
			Difficulty: brokerListDifficulty,
		})
		if err != nil {
			return err
		}
		if len(brokers) == 0 {
			fmt.Println("No brokers registered.")
			return nil
		}
		for _, b := range brokers {
			fmt.Printf("%-25s %-20s %-10s %-8s automatable=%v\n", b.Slug, b.Name, b.Category, b.Difficulty, b.Automatable)
		}
		return nil
	},
}

var brokerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the broker registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := db.BrokerStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Total brokers: %d (%d automatable)\n", stats.Total, stats.AutomatableCount)
		fmt.Println("By category:")
		for k, v := range stats.ByCategory {
			fmt.Printf("  %-20s %d\n", k, v)
		}
		fmt.Println("By difficulty:")
		for k, v := range stats.ByDifficulty {
			fmt.Printf("  %-20s %d\n", k, v)
		}
		fmt.Println("By method:")
		for k, v := range stats.ByMethod {
			fmt.Printf("  %-20s %d\n", k, v)
		}
		return nil
	},
}

func init() {
	brokerLoadCmd.Flags().StringVar(&brokerLoadDir, "dir", "brokers", "directory of broker YAML files")
	brokerListCmd.Flags().StringVar(&brokerListCategory, "category", "", "filter by category")
	brokerListCmd.Flags().StringVar(&brokerListDifficulty, "difficulty", "", "filter by difficulty")

	brokerCmd.AddCommand(brokerLoadCmd, brokerListCmd, brokerStatsCmd)
	rootCmd.AddCommand(brokerCmd)
}
