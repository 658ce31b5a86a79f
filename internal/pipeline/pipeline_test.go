package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/untoldecay/footprint/internal/config"
	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/scanner"
	"github.com/untoldecay/footprint/internal/store"
)

func newTestPipeline(t *testing.T) (*Pipeline, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "footprint.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return &Pipeline{Store: s, Config: &config.Config{}, Logger: zerolog.Nop()}, s
}

func TestProtectPersonNoEmailsStillCompletesAndRecordsRun(t *testing.T) {
	p, s := newTestPipeline(t)
	ctx := context.Background()

	personID, err := s.InsertPerson(ctx, &model.Person{Name: "Jane Doe", Usernames: []string{"janedoe"}})
	if err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}

	result, err := p.ProtectPerson(ctx, personID)
	if err != nil {
		t.Fatalf("ProtectPerson: %v", err)
	}
	if result.Status != model.RunCompleted {
		t.Errorf("Status = %q, want %q", result.Status, model.RunCompleted)
	}
	if result.BreachesFound != 0 || result.DarkWebFindings != 0 {
		t.Errorf("expected zero findings with no emails, got breaches=%d darkweb=%d", result.BreachesFound, result.DarkWebFindings)
	}
	if result.AccountsFound != 1 {
		t.Errorf("AccountsFound = %d, want 1", result.AccountsFound)
	}
	if !strings.Contains(result.Report, "Jane Doe") {
		t.Errorf("report missing person name:\n%s", result.Report)
	}

	runs, err := s.ListPipelineRunsByPerson(ctx, personID)
	if err != nil {
		t.Fatalf("ListPipelineRunsByPerson: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d pipeline runs, want 1", len(runs))
	}
	if runs[0].Status != model.RunCompleted {
		t.Errorf("stored run Status = %q, want %q", runs[0].Status, model.RunCompleted)
	}
}

func TestProtectPersonUnknownPersonIsError(t *testing.T) {
	p, _ := newTestPipeline(t)
	if _, err := p.ProtectPerson(context.Background(), 999); err == nil {
		t.Error("expected an error for a non-existent person, got nil")
	}
}

func TestScanEmailsEmptyListReturnsEmptyOutcomes(t *testing.T) {
	p, _ := newTestPipeline(t)
	outcomes := p.scanEmails(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for an empty email list, want 0", len(outcomes))
	}
}

func TestComputeRiskScoreCombinesAllSources(t *testing.T) {
	hibp := []scanner.HIBPBreach{{DataClasses: []string{"Passwords"}}}
	dehashed := []scanner.DehashedRecord{{}}
	pastes := []scanner.PasteResult{{}}

	score := computeRiskScore(hibp, dehashed, pastes)
	if score <= 0 {
		t.Errorf("computeRiskScore() = %d, want > 0 with findings from all three sources", score)
	}
}

func TestComputeRiskScoreNoFindingsIsZero(t *testing.T) {
	if got := computeRiskScore(nil, nil, nil); got != 0 {
		t.Errorf("computeRiskScore() with no findings = %d, want 0", got)
	}
}

func TestToHIBPFindingsPreservesFields(t *testing.T) {
	in := []scanner.HIBPBreach{{Title: "Adobe", BreachDate: "2013-10-04", DataClasses: []string{"Emails", "Passwords"}}}
	out := toHIBPFindings(in)
	if len(out) != 1 {
		t.Fatalf("got %d findings, want 1", len(out))
	}
	if out[0].Name != "Adobe" || out[0].BreachDate != "2013-10-04" {
		t.Errorf("got %+v", out[0])
	}
	if out[0].Severity != model.RiskCritical {
		t.Errorf("Severity = %q, want %q (Passwords class)", out[0].Severity, model.RiskCritical)
	}
}

func TestToDehashedFindingsPreservesFields(t *testing.T) {
	in := []scanner.DehashedRecord{{DatabaseName: "some-leak"}}
	out := toDehashedFindings(in)
	if len(out) != 1 || out[0].DatabaseName != "some-leak" {
		t.Fatalf("got %+v", out)
	}
}

func TestToUsernameFindingsOneFindingPerUsername(t *testing.T) {
	out := toUsernameFindings([]string{"janedoe", "jdoe2"})
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].SiteName != "janedoe" || out[0].RiskLevel != model.RiskLow {
		t.Errorf("got %+v", out[0])
	}
}

func TestToUsernameFindingsEmptyReturnsEmptyNotNil(t *testing.T) {
	out := toUsernameFindings(nil)
	if out == nil {
		t.Error("toUsernameFindings(nil) should return an empty slice, not nil")
	}
	if len(out) != 0 {
		t.Errorf("got %d findings, want 0", len(out))
	}
}
