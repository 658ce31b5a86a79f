package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/robfig/cron/v3"

	"github.com/untoldecay/footprint/internal/alert"
	"github.com/untoldecay/footprint/internal/store"
)

// GetOverdueJobs returns every job name whose interval has elapsed since its
// last recorded run (or that has never run at all), in jobOrder's fixed
// order (spec §4.6 "Overdue detection").
func GetOverdueJobs(ctx context.Context, s *store.Store) ([]string, error) {
	var overdue []string
	now := time.Now().UTC()

	for _, name := range jobOrder {
		interval := JobIntervals[name]
		last, err := s.LastRun(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("last run for %s: %w", name, err)
		}
		if last == nil {
			overdue = append(overdue, name)
			continue
		}
		if now.Sub(last.StartedAt) >= time.Duration(interval)*24*time.Hour {
			overdue = append(overdue, name)
		}
	}
	return overdue, nil
}

// RunScheduledJobs runs every currently-overdue job, recording a
// ScheduledRun row per invocation. A job that panics-equivalent errors is
// recorded as failed without aborting the remaining overdue jobs (spec §7
// category 4).
func (s *Scheduler) RunScheduledJobs(ctx context.Context) ([]JobResult, error) {
	overdue, err := GetOverdueJobs(ctx, s.Store)
	if err != nil {
		return nil, err
	}

	results := make([]JobResult, 0, len(overdue))
	for _, name := range overdue {
		s.Logger.Info().Str("job", name).Msg("running scheduled job")

		// previousCount must be read before this invocation's row exists, or
		// LastRun would return the row this very call is about to write.
		prevCount, err := s.previousCount(ctx, name)
		if err != nil {
			s.Logger.Warn().Err(err).Str("job", name).Msg("failed to read previous run count")
		}

		runID, err := s.Store.InsertScheduledRun(ctx, name, time.Now().UTC())
		if err != nil {
			return results, fmt.Errorf("insert scheduled run %s: %w", name, err)
		}

		result := s.runJob(ctx, name)
		if result.Status == "" {
			result.Status = "success"
		}

		updateErr := s.Store.UpdateScheduledRun(ctx, runID, store.ScheduledRunTerminal{
			CompletedAt: result.CompletedAt,
			Status:      result.Status,
			Details:     result.Details,
			Error:       result.Error,
		})
		if updateErr != nil {
			s.Logger.Error().Err(updateErr).Str("job", name).Msg("failed to record scheduled run")
		}

		results = append(results, result)
		s.Logger.Info().Str("job", name).Str("status", result.Status).Msg("scheduled job finished")

		if result.Status == "success" {
			alert.CheckAndAlert(name, newCountOf(result.Details), prevCount, "all protected persons", s.Config)
		}
	}

	return results, nil
}

// ScheduleStatus is one job's current due-date state.
type ScheduleStatus struct {
	Name         string
	IntervalDays int
	LastRun      *time.Time
	NextDue      time.Time
	Status       string
	Overdue      bool
	NeverRun     bool
}

// GetScheduleStatus reports every job's last run and next-due time, plus
// the most recent run history across all jobs.
func (s *Scheduler) GetScheduleStatus(ctx context.Context) ([]ScheduleStatus, error) {
	now := time.Now().UTC()
	out := make([]ScheduleStatus, 0, len(jobOrder))

	for _, name := range jobOrder {
		interval := JobIntervals[name]
		last, err := s.Store.LastRun(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("last run for %s: %w", name, err)
		}
		if last == nil {
			out = append(out, ScheduleStatus{
				Name: name, IntervalDays: interval, NextDue: now, Status: "never_run", NeverRun: true, Overdue: true,
			})
			continue
		}
		nextDue := last.StartedAt.Add(time.Duration(interval) * 24 * time.Hour)
		out = append(out, ScheduleStatus{
			Name: name, IntervalDays: interval, LastRun: &last.StartedAt, NextDue: nextDue,
			Status: last.Status, Overdue: !now.Before(nextDue),
		})
	}
	return out, nil
}

// Lock acquires an exclusive file lock in dbDir so two invocations of the
// scheduler never race against the same database (spec §9 adopts the
// teacher's single-invocation sync lock for the scheduled entry point).
func Lock(dbDir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dbDir, ".scheduler.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring scheduler lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another scheduler run is in progress")
	}
	return lock, nil
}

// RunDaemon starts a continuous cron-driven loop that calls RunScheduledJobs
// on the cron schedule checkSpec ("@every 1h" when empty), supplementing the primary cron-invoked one-shot
// entry point with an optional always-on mode (spec §9 "Continuous daemon
// mode"). It blocks until ctx is cancelled.
func (s *Scheduler) RunDaemon(ctx context.Context, checkSpec string) error {
	if checkSpec == "" {
		checkSpec = "@every 1h"
	}

	c := cron.New()
	_, err := c.AddFunc(checkSpec, func() {
		if _, err := s.RunScheduledJobs(ctx); err != nil {
			s.Logger.Error().Err(err).Msg("scheduled job run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daemon loop: %w", err)
	}

	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return ctx.Err()
}
