// Package scheduler runs the fixed set of recurring maintenance jobs —
// breach rechecks, dark-web monitoring, removal verification, and report
// generation — tracking each invocation as an append-only ScheduledRun row
// (spec §4.6 "Scheduler"). Grounded on
// original_source/digital_footprint/scheduler/{jobs,runner}.py.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/untoldecay/footprint/internal/config"
	"github.com/untoldecay/footprint/internal/removal/verify"
	"github.com/untoldecay/footprint/internal/report"
	"github.com/untoldecay/footprint/internal/scanner"
	"github.com/untoldecay/footprint/internal/store"
)

// JobIntervals is the closed set of scheduled jobs and their re-run interval
// in days (spec §4.6).
var JobIntervals = map[string]int{
	"breach_recheck":   7,
	"dark_web_monitor": 3,
	"verify_removals":  1,
	"generate_report":  7,
}

// jobOrder fixes the iteration order over JobIntervals so results and logs
// are deterministic across runs.
var jobOrder = []string{"breach_recheck", "dark_web_monitor", "verify_removals", "generate_report"}

// JobResult is the outcome of one job invocation.
type JobResult struct {
	JobName     string
	StartedAt   time.Time
	CompletedAt time.Time
	Status      string // success, skipped, failed
	Details     map[string]any
	Error       string
}

// Scheduler runs jobs against a store and config, recording a ScheduledRun
// row for each invocation.
type Scheduler struct {
	Store      *store.Store
	Config     *config.Config
	ReportsDir string
	Logger     zerolog.Logger
}

func (s *Scheduler) runJob(ctx context.Context, name string) JobResult {
	switch name {
	case "breach_recheck":
		return s.jobBreachRecheck(ctx)
	case "dark_web_monitor":
		return s.jobDarkWebMonitor(ctx)
	case "verify_removals":
		return s.jobVerifyRemovals(ctx)
	case "generate_report":
		return s.jobGenerateReport(ctx)
	default:
		return JobResult{JobName: name, Status: "failed", Error: fmt.Sprintf("unknown job %q", name)}
	}
}

// jobBreachRecheck re-checks every person's first email for new breaches.
func (s *Scheduler) jobBreachRecheck(ctx context.Context) JobResult {
	started := time.Now().UTC()
	persons, err := s.Store.ListPersons(ctx)
	if err != nil {
		return JobResult{JobName: "breach_recheck", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "failed", Error: err.Error()}
	}

	var withEmail []string
	for _, p := range persons {
		if p.FirstEmail() != "" {
			withEmail = append(withEmail, p.FirstEmail())
		}
	}

	if len(withEmail) == 0 {
		return JobResult{
			JobName: "breach_recheck", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
			Details: map[string]any{"persons_checked": 0, "new_breaches": 0, "new_count": 0},
		}
	}

	totalNew := 0
	for _, email := range withEmail {
		result, err := scanner.ScanBreaches(ctx, email, scanner.BreachConfig{
			HIBPAPIKey:     s.Config.HIBPAPIKey,
			DehashedAPIKey: s.Config.DehashedAPIKey,
			DehashedEmail:  s.Config.DehashedEmail,
		})
		if err != nil {
			s.Logger.Warn().Err(err).Str("email", email).Msg("breach check failed")
			continue
		}
		totalNew += result.Total
	}

	return JobResult{
		JobName: "breach_recheck", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
		Details: map[string]any{"persons_checked": len(withEmail), "new_breaches": totalNew, "new_count": totalNew},
	}
}

// jobDarkWebMonitor re-runs the dark-web scan for every person's first email.
func (s *Scheduler) jobDarkWebMonitor(ctx context.Context) JobResult {
	started := time.Now().UTC()
	persons, err := s.Store.ListPersons(ctx)
	if err != nil {
		return JobResult{JobName: "dark_web_monitor", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "failed", Error: err.Error()}
	}

	var withEmail []string
	for _, p := range persons {
		if p.FirstEmail() != "" {
			withEmail = append(withEmail, p.FirstEmail())
		}
	}

	if len(withEmail) == 0 {
		return JobResult{
			JobName: "dark_web_monitor", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
			Details: map[string]any{"persons_checked": 0, "total_findings": 0, "new_count": 0},
		}
	}

	totalFindings := 0
	for _, email := range withEmail {
		result, err := scanner.ScanDarkWeb(ctx, email, s.Config.HIBPAPIKey, nil)
		if err != nil {
			s.Logger.Warn().Err(err).Str("email", email).Msg("dark web scan failed")
			continue
		}
		totalFindings += result.Total
	}

	return JobResult{
		JobName: "dark_web_monitor", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
		Details: map[string]any{"persons_checked": len(withEmail), "total_findings": totalFindings, "new_count": totalFindings},
	}
}

// jobVerifyRemovals re-scans every removal due for verification.
func (s *Scheduler) jobVerifyRemovals(ctx context.Context) JobResult {
	started := time.Now().UTC()
	v := &verify.Verifier{Store: s.Store}

	pending, err := s.Store.PendingVerifications(ctx)
	if err != nil {
		return JobResult{JobName: "verify_removals", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "failed", Error: err.Error()}
	}
	if len(pending) == 0 {
		return JobResult{
			JobName: "verify_removals", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "skipped",
			Details: map[string]any{"pending_count": 0, "message": "no removals due for verification", "new_count": 0},
		}
	}

	verified := 0
	for _, r := range pending {
		if _, err := v.VerifySingle(ctx, r); err != nil {
			s.Logger.Warn().Err(err).Int64("removal_id", r.ID).Msg("verification failed")
			continue
		}
		verified++
	}

	return JobResult{
		JobName: "verify_removals", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
		Details: map[string]any{"pending_count": len(pending), "verified": verified, "new_count": verified},
	}
}

// jobGenerateReport writes a fresh exposure report for every person to
// ReportsDir/<date>-<person-slug>.md.
func (s *Scheduler) jobGenerateReport(ctx context.Context) JobResult {
	started := time.Now().UTC()
	persons, err := s.Store.ListPersons(ctx)
	if err != nil {
		return JobResult{JobName: "generate_report", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "failed", Error: err.Error()}
	}
	if len(persons) == 0 {
		return JobResult{
			JobName: "generate_report", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
			Details: map[string]any{"persons_reported": 0},
		}
	}

	if err := os.MkdirAll(s.ReportsDir, 0o755); err != nil {
		return JobResult{JobName: "generate_report", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "failed", Error: err.Error()}
	}

	dateStr := started.Format("2006-01-02")
	for _, p := range persons {
		text := report.Generate(report.Input{PersonName: p.Name, Now: started})
		path := filepath.Join(s.ReportsDir, fmt.Sprintf("%s-%s.md", dateStr, slugify(p.Name)))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			s.Logger.Warn().Err(err).Str("person", p.Name).Msg("report write failed")
			continue
		}
		s.Logger.Info().Str("path", path).Msg("report written")
	}

	return JobResult{
		JobName: "generate_report", StartedAt: started, CompletedAt: time.Now().UTC(), Status: "success",
		Details: map[string]any{"persons_reported": len(persons)},
	}
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// previousCount resolves the prior ScheduledRun row's recorded new_count for
// jobName, or 0 if the job has never run before. This is the Open Question
// resolution recorded in the grounding ledger: the original Python scheduler
// has no previous-run comparison at all, so this module invents the
// contract that alerting compares against the last stored count.
func (s *Scheduler) previousCount(ctx context.Context, jobName string) (int, error) {
	previous, err := s.Store.LastRun(ctx, jobName)
	if err != nil {
		return 0, err
	}
	if previous == nil {
		return 0, nil
	}
	return newCountOf(previous.Details), nil
}

func newCountOf(details map[string]any) int {
	v, ok := details["new_count"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
