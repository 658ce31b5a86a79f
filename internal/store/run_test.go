package store

import (
	"context"
	"testing"
	"time"

	"github.com/untoldecay/footprint/internal/model"
)

func TestPipelineRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	personID := mustInsertPerson(t, s, "Jane Doe")

	id, err := s.InsertPipelineRun(ctx, personID, time.Now())
	if err != nil {
		t.Fatalf("InsertPipelineRun: %v", err)
	}

	err = s.UpdatePipelineRun(ctx, id, PipelineRunTerminal{
		CompletedAt:     time.Now(),
		Status:          model.RunCompleted,
		BreachesFound:   2,
		DarkWebFindings: 1,
		AccountsFound:   3,
		RiskScore:       42,
	})
	if err != nil {
		t.Fatalf("UpdatePipelineRun: %v", err)
	}

	runs, err := s.ListPipelineRunsByPerson(ctx, personID)
	if err != nil {
		t.Fatalf("ListPipelineRunsByPerson: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Status != model.RunCompleted {
		t.Errorf("Status = %q, want %q", r.Status, model.RunCompleted)
	}
	if r.RiskScore != 42 {
		t.Errorf("RiskScore = %d, want 42", r.RiskScore)
	}
	if r.CompletedAt == nil {
		t.Errorf("CompletedAt not set")
	}
}

func TestScheduledRunLastRunAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if got, err := s.LastRun(ctx, "breach_recheck"); err != nil {
		t.Fatalf("LastRun on empty table: %v", err)
	} else if got != nil {
		t.Errorf("LastRun on empty table = %v, want nil", got)
	}

	id1, err := s.InsertScheduledRun(ctx, "breach_recheck", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("InsertScheduledRun: %v", err)
	}
	if err := s.UpdateScheduledRun(ctx, id1, ScheduledRunTerminal{CompletedAt: time.Now(), Status: model.ScheduledSuccess, Details: map[string]any{"new_count": float64(3)}}); err != nil {
		t.Fatalf("UpdateScheduledRun: %v", err)
	}

	id2, err := s.InsertScheduledRun(ctx, "breach_recheck", time.Now())
	if err != nil {
		t.Fatalf("InsertScheduledRun: %v", err)
	}
	if err := s.UpdateScheduledRun(ctx, id2, ScheduledRunTerminal{CompletedAt: time.Now(), Status: model.ScheduledSuccess, Details: map[string]any{"new_count": float64(5)}}); err != nil {
		t.Fatalf("UpdateScheduledRun: %v", err)
	}

	last, err := s.LastRun(ctx, "breach_recheck")
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last == nil || last.ID != id2 {
		t.Fatalf("LastRun = %v, want run #%d", last, id2)
	}
	if last.Details["new_count"] != float64(5) {
		t.Errorf("Details[new_count] = %v, want 5", last.Details["new_count"])
	}

	history, err := s.RunHistory(ctx, 10)
	if err != nil {
		t.Fatalf("RunHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d history entries, want 2", len(history))
	}
	if history[0].ID != id2 {
		t.Errorf("RunHistory[0].ID = %d, want most recent run %d first", history[0].ID, id2)
	}
}
