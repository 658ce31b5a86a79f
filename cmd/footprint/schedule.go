package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run or inspect the recurring job table",
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every currently-overdue scheduled job (cron-invoked entry point)",
	Long:  "Acquires an exclusive lock beside the database, runs every overdue job in table order, and exits 1 if any job's terminal status is failed (spec §6 exit codes).",
	RunE: func(cmd *cobra.Command, args []string) error {
		lock, err := scheduler.Lock(filepath.Dir(cfg.DBPath))
		if err != nil {
			return err
		}
		defer lock.Unlock()

		s := &scheduler.Scheduler{
			Store:      db,
			Config:     cfg,
			ReportsDir: filepath.Join(filepath.Dir(cfg.DBPath), "reports"),
			Logger:     log,
		}

		results, err := s.RunScheduledJobs(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No jobs overdue.")
			return nil
		}

		anyFailed := false
		for _, r := range results {
			fmt.Printf("%-20s %s\n", r.JobName, r.Status)
			if r.Error != "" {
				fmt.Printf("  error: %s\n", r.Error)
			}
			if r.Status == "failed" {
				anyFailed = true
			}
		}
		if anyFailed {
			os.Exit(1)
		}
		return nil
	},
}

var scheduleStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show each job's last run, next-due time, and recent history",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &scheduler.Scheduler{Store: db, Config: cfg, Logger: log}

		statuses, err := s.GetScheduleStatus(cmd.Context())
		if err != nil {
			return err
		}
		for _, st := range statuses {
			due := "never run"
			if !st.NeverRun {
				due = st.NextDue.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-20s interval=%dd last_status=%-10s next_due=%s overdue=%v\n",
				st.Name, st.IntervalDays, st.Status, due, st.Overdue)
		}

		history, err := db.RunHistory(cmd.Context(), 10)
		if err != nil {
			return err
		}
		if len(history) > 0 {
			fmt.Println("\nRecent runs:")
			for _, h := range history {
				fmt.Printf("  #%d %-20s %-10s started=%s\n", h.ID, h.JobName, h.Status, h.StartedAt.Format("2006-01-02 15:04:05"))
			}
		}
		return nil
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleRunCmd, scheduleStatusCmd)
	rootCmd.AddCommand(scheduleCmd)
}
