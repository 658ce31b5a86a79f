package store

import (
	"context"
	"testing"

	"github.com/untoldecay/footprint/internal/model"
)

func mustInsertPerson(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.InsertPerson(context.Background(), &model.Person{Name: name})
	if err != nil {
		t.Fatalf("InsertPerson(%s): %v", name, err)
	}
	return id
}

func TestInsertAndListFindings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	personID := mustInsertPerson(t, s, "Jane Doe")

	id, err := s.InsertFinding(ctx, &model.Finding{
		PersonID:    personID,
		Source:      "spokeo",
		FindingType: "broker_listing",
		RiskLevel:   model.RiskHigh,
		URL:         "https://spokeo.com/jane-doe",
		DataFound:   map[string]any{"phone": "555-0100"},
	})
	if err != nil {
		t.Fatalf("InsertFinding: %v", err)
	}

	got, err := s.GetFinding(ctx, id)
	if err != nil {
		t.Fatalf("GetFinding: %v", err)
	}
	if got.Status != model.FindingActive {
		t.Errorf("Status defaulted to %q, want %q", got.Status, model.FindingActive)
	}
	if got.DataFound["phone"] != "555-0100" {
		t.Errorf("DataFound = %v", got.DataFound)
	}
	if got.BrokerID != nil {
		t.Errorf("BrokerID = %v, want nil (not linked to a broker row)", got.BrokerID)
	}

	list, err := s.ListFindingsByPerson(ctx, personID)
	if err != nil {
		t.Fatalf("ListFindingsByPerson: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d findings, want 1", len(list))
	}
}

func TestUpdateFindingStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	personID := mustInsertPerson(t, s, "Jane Doe")

	id, err := s.InsertFinding(ctx, &model.Finding{PersonID: personID, Source: "spokeo", FindingType: "broker_listing", RiskLevel: model.RiskHigh})
	if err != nil {
		t.Fatalf("InsertFinding: %v", err)
	}

	if err := s.UpdateFindingStatus(ctx, id, model.FindingRemovalPending); err != nil {
		t.Fatalf("UpdateFindingStatus: %v", err)
	}
	got, err := s.GetFinding(ctx, id)
	if err != nil {
		t.Fatalf("GetFinding: %v", err)
	}
	if got.Status != model.FindingRemovalPending {
		t.Errorf("Status = %q, want %q", got.Status, model.FindingRemovalPending)
	}
}

func TestUpdateFindingStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateFindingStatus(context.Background(), 999, model.FindingRemoved); err != ErrFindingNotFound {
		t.Errorf("UpdateFindingStatus(missing) = %v, want ErrFindingNotFound", err)
	}
}

func TestListFindingsByPersonReturnsAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	personID := mustInsertPerson(t, s, "Jane Doe")

	for _, src := range []string{"first", "second", "third"} {
		if _, err := s.InsertFinding(ctx, &model.Finding{PersonID: personID, Source: src, FindingType: "broker_listing", RiskLevel: model.RiskLow}); err != nil {
			t.Fatalf("InsertFinding(%s): %v", src, err)
		}
	}

	list, err := s.ListFindingsByPerson(ctx, personID)
	if err != nil {
		t.Fatalf("ListFindingsByPerson: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d findings, want 3", len(list))
	}
}
