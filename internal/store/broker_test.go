package store

import (
	"context"
	"testing"

	"github.com/untoldecay/footprint/internal/model"
)

func testBroker(slug string) *model.Broker {
	return &model.Broker{
		Slug:         slug,
		Name:         "Spokeo",
		URL:          "https://spokeo.com",
		Category:     model.CategoryPeopleSearch,
		OptOutMethod: model.MethodWebForm,
		OptOutURL:    "https://spokeo.com/optout",
		OptOutSteps:  []string{"search for yourself", "click remove", "confirm email"},
		Difficulty:   model.DifficultyMedium,
		Automatable:  true,
		RecheckDays:  30,
		CCPACompliant: true,
	}
}

func TestUpsertBrokerBySlugInsertsThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := testBroker("spokeo")
	id1, err := s.UpsertBrokerBySlug(ctx, b)
	if err != nil {
		t.Fatalf("UpsertBrokerBySlug (insert): %v", err)
	}

	// Loading the same slug again with a different name must replace the
	// row in place, not create a second one (spec §4.2 registry reload).
	b2 := testBroker("spokeo")
	b2.Name = "Spokeo Inc"
	b2.Difficulty = model.DifficultyHard
	id2, err := s.UpsertBrokerBySlug(ctx, b2)
	if err != nil {
		t.Fatalf("UpsertBrokerBySlug (update): %v", err)
	}
	if id1 != id2 {
		t.Errorf("slug upsert changed id: %d -> %d", id1, id2)
	}

	got, err := s.GetBrokerBySlug(ctx, "spokeo")
	if err != nil {
		t.Fatalf("GetBrokerBySlug: %v", err)
	}
	if got.Name != "Spokeo Inc" {
		t.Errorf("Name = %q, want %q", got.Name, "Spokeo Inc")
	}
	if got.Difficulty != model.DifficultyHard {
		t.Errorf("Difficulty = %q, want %q", got.Difficulty, model.DifficultyHard)
	}
	if len(got.OptOutSteps) != 3 {
		t.Errorf("OptOutSteps = %v, want 3 entries preserved in order", got.OptOutSteps)
	}

	all, err := s.ListBrokers(ctx, BrokerFilter{})
	if err != nil {
		t.Fatalf("ListBrokers: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d brokers after re-upsert, want 1 (idempotent reload)", len(all))
	}
}

func TestListBrokersFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	easy := testBroker("easybroker")
	easy.Difficulty = model.DifficultyEasy
	easy.Automatable = true
	hard := testBroker("hardbroker")
	hard.Difficulty = model.DifficultyHard
	hard.Automatable = false
	hard.Category = model.CategoryBackgroundCheck

	for _, b := range []*model.Broker{easy, hard} {
		if _, err := s.UpsertBrokerBySlug(ctx, b); err != nil {
			t.Fatalf("UpsertBrokerBySlug(%s): %v", b.Slug, err)
		}
	}

	byCategory, err := s.ListBrokers(ctx, BrokerFilter{Category: model.CategoryBackgroundCheck})
	if err != nil {
		t.Fatalf("ListBrokers by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Slug != "hardbroker" {
		t.Errorf("category filter returned %v, want [hardbroker]", byCategory)
	}

	auto := true
	byAuto, err := s.ListBrokers(ctx, BrokerFilter{Automatable: &auto})
	if err != nil {
		t.Fatalf("ListBrokers by automatable: %v", err)
	}
	if len(byAuto) != 1 || byAuto[0].Slug != "easybroker" {
		t.Errorf("automatable filter returned %v, want [easybroker]", byAuto)
	}

	// Results are ordered by slug regardless of insertion order.
	allBrokers, err := s.ListBrokers(ctx, BrokerFilter{})
	if err != nil {
		t.Fatalf("ListBrokers: %v", err)
	}
	if len(allBrokers) != 2 || allBrokers[0].Slug != "easybroker" || allBrokers[1].Slug != "hardbroker" {
		t.Errorf("ListBrokers order = %v, want [easybroker hardbroker]", allBrokers)
	}
}

func TestBrokerStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testBroker("a")
	b := testBroker("b")
	b.Automatable = false
	b.Category = model.CategoryFinancial
	for _, br := range []*model.Broker{a, b} {
		if _, err := s.UpsertBrokerBySlug(ctx, br); err != nil {
			t.Fatalf("UpsertBrokerBySlug: %v", err)
		}
	}

	stats, err := s.BrokerStats(ctx)
	if err != nil {
		t.Fatalf("BrokerStats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.AutomatableCount != 1 {
		t.Errorf("AutomatableCount = %d, want 1", stats.AutomatableCount)
	}
	if stats.ByCategory[model.CategoryPeopleSearch] != 1 || stats.ByCategory[model.CategoryFinancial] != 1 {
		t.Errorf("ByCategory = %v", stats.ByCategory)
	}
	if stats.ByMethod[model.MethodWebForm] != 2 {
		t.Errorf("ByMethod[web_form] = %d, want 2", stats.ByMethod[model.MethodWebForm])
	}
}

func TestGetBrokerBySlugNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetBrokerBySlug(context.Background(), "nonexistent"); err != ErrBrokerNotFound {
		t.Errorf("GetBrokerBySlug(missing) = %v, want ErrBrokerNotFound", err)
	}
}
