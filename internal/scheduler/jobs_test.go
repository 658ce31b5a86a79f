package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/untoldecay/footprint/internal/config"
	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/store"
)

func newTestScheduler(t *testing.T) (*Scheduler, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "footprint.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return &Scheduler{
		Store:      s,
		Config:     &config.Config{},
		ReportsDir: t.TempDir(),
		Logger:     zerolog.Nop(),
	}, s
}

func TestNewCountOf(t *testing.T) {
	cases := []struct {
		name    string
		details map[string]any
		want    int
	}{
		{"missing key", map[string]any{}, 0},
		{"int value", map[string]any{"new_count": 7}, 7},
		{"float64 value (round-trips through JSON)", map[string]any{"new_count": float64(4)}, 4},
		{"wrong type", map[string]any{"new_count": "oops"}, 0},
	}
	for _, c := range cases {
		if got := newCountOf(c.details); got != c.want {
			t.Errorf("%s: newCountOf() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("Jane Doe"); got != "jane-doe" {
		t.Errorf("slugify = %q, want jane-doe", got)
	}
	if got := slugify("  Padded Name  "); got != "padded-name" {
		t.Errorf("slugify = %q, want padded-name", got)
	}
}

func TestJobBreachRecheckNoPersonsSucceedsWithZeroCount(t *testing.T) {
	sched, _ := newTestScheduler(t)
	result := sched.jobBreachRecheck(context.Background())
	if result.Status != "success" {
		t.Fatalf("Status = %q, want success", result.Status)
	}
	if result.Details["persons_checked"] != 0 {
		t.Errorf("persons_checked = %v, want 0", result.Details["persons_checked"])
	}
}

func TestJobDarkWebMonitorNoPersonsSucceedsWithZeroCount(t *testing.T) {
	sched, _ := newTestScheduler(t)
	result := sched.jobDarkWebMonitor(context.Background())
	if result.Status != "success" {
		t.Fatalf("Status = %q, want success", result.Status)
	}
	if result.Details["total_findings"] != 0 {
		t.Errorf("total_findings = %v, want 0", result.Details["total_findings"])
	}
}

func TestJobVerifyRemovalsNoPendingIsSkipped(t *testing.T) {
	sched, _ := newTestScheduler(t)
	result := sched.jobVerifyRemovals(context.Background())
	if result.Status != "skipped" {
		t.Errorf("Status = %q, want skipped", result.Status)
	}
}

func TestJobGenerateReportWritesOneFilePerPerson(t *testing.T) {
	sched, s := newTestScheduler(t)
	ctx := context.Background()

	if _, err := s.InsertPerson(ctx, &model.Person{Name: "Jane Doe"}); err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}
	if _, err := s.InsertPerson(ctx, &model.Person{Name: "John Smith"}); err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}

	result := sched.jobGenerateReport(ctx)
	if result.Status != "success" {
		t.Fatalf("Status = %q, want success", result.Status)
	}
	if result.Details["persons_reported"] != 2 {
		t.Errorf("persons_reported = %v, want 2", result.Details["persons_reported"])
	}

	entries, err := os.ReadDir(sched.ReportsDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d report files, want 2", len(entries))
	}
}

func TestJobGenerateReportNoPersonsWritesNothing(t *testing.T) {
	sched, _ := newTestScheduler(t)
	result := sched.jobGenerateReport(context.Background())
	if result.Status != "success" {
		t.Fatalf("Status = %q, want success", result.Status)
	}
	if result.Details["persons_reported"] != 0 {
		t.Errorf("persons_reported = %v, want 0", result.Details["persons_reported"])
	}
}

func TestPreviousCountNeverRunIsZero(t *testing.T) {
	sched, _ := newTestScheduler(t)
	got, err := sched.previousCount(context.Background(), "breach_recheck")
	if err != nil {
		t.Fatalf("previousCount: %v", err)
	}
	if got != 0 {
		t.Errorf("previousCount for never-run job = %d, want 0", got)
	}
}

func TestPreviousCountReadsLastRunDetails(t *testing.T) {
	sched, s := newTestScheduler(t)
	ctx := context.Background()

	runID, err := s.InsertScheduledRun(ctx, "breach_recheck", time.Now().UTC())
	if err != nil {
		t.Fatalf("InsertScheduledRun: %v", err)
	}
	if err := s.UpdateScheduledRun(ctx, runID, store.ScheduledRunTerminal{
		CompletedAt: time.Now().UTC(),
		Status:      "success",
		Details:     map[string]any{"new_count": 3},
	}); err != nil {
		t.Fatalf("UpdateScheduledRun: %v", err)
	}

	got, err := sched.previousCount(ctx, "breach_recheck")
	if err != nil {
		t.Fatalf("previousCount: %v", err)
	}
	if got != 3 {
		t.Errorf("previousCount = %d, want 3", got)
	}
}
