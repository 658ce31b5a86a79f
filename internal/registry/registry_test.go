package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "footprint.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

const spokeoYAML = `
name: Spokeo
url: https://spokeo.com
category: people_search
difficulty: medium
automatable: true
recheck_days: 30
opt_out:
  method: web_form
  url: https://spokeo.com/optout
  steps:
    - search for yourself
    - click remove
`

func writeBrokerFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadAllValidFile(t *testing.T) {
	dir := t.TempDir()
	writeBrokerFile(t, dir, "spokeo.yaml", spokeoYAML)
	s := newTestStore(t)

	result, err := LoadAll(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if result.Loaded != 1 {
		t.Fatalf("Loaded = %d, want 1; errors: %v", result.Loaded, result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	b, err := s.GetBrokerBySlug(context.Background(), "spokeo")
	if err != nil {
		t.Fatalf("GetBrokerBySlug: %v", err)
	}
	if b.Name != "Spokeo" || b.Category != model.CategoryPeopleSearch {
		t.Errorf("got %+v", b)
	}
	if len(b.OptOutSteps) != 2 {
		t.Errorf("OptOutSteps = %v, want 2 entries", b.OptOutSteps)
	}
}

func TestLoadAllIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeBrokerFile(t, dir, "spokeo.yaml", spokeoYAML)
	s := newTestStore(t)

	if _, err := LoadAll(context.Background(), s, dir); err != nil {
		t.Fatalf("first LoadAll: %v", err)
	}
	if _, err := LoadAll(context.Background(), s, dir); err != nil {
		t.Fatalf("second LoadAll: %v", err)
	}

	all, err := s.ListBrokers(context.Background(), store.BrokerFilter{})
	if err != nil {
		t.Fatalf("ListBrokers: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d brokers after loading twice, want 1", len(all))
	}
}

func TestLoadAllSkipsInvalidDocumentsWithoutFailingWholeLoad(t *testing.T) {
	dir := t.TempDir()
	writeBrokerFile(t, dir, "good.yaml", spokeoYAML)
	writeBrokerFile(t, dir, "bad.yaml", "name: BadBroker\nurl: https://bad.example\ncategory: not_a_real_category\n")
	writeBrokerFile(t, dir, "_ignored.yaml", spokeoYAML) // leading underscore is skipped entirely
	writeBrokerFile(t, dir, "notes.txt", "not yaml at all")

	s := newTestStore(t)
	result, err := LoadAll(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if result.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", result.Loaded)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry for bad.yaml", result.Errors)
	}

	all, err := s.ListBrokers(context.Background(), store.BrokerFilter{})
	if err != nil {
		t.Fatalf("ListBrokers: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d brokers loaded, want 1 (only the valid one)", len(all))
	}
}

func TestValidateRequiredFields(t *testing.T) {
	errs := Validate(brokerYAML{})
	if len(errs) < 2 {
		t.Fatalf("expected at least name/category errors on an empty document, got %v", errs)
	}
}

func TestValidateClosedSetEnums(t *testing.T) {
	doc := brokerYAML{
		Name:     "X",
		URL:      "https://x.example",
		Category: "not_a_category",
		OptOut:   optOutYAML{Method: "carrier_pigeon"},
	}
	errs := Validate(doc)
	if len(errs) != 2 {
		t.Fatalf("got %v, want exactly 2 errors (category, opt_out.method)", errs)
	}
}

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := brokerYAML{
		Name:     "Spokeo",
		URL:      "https://spokeo.com",
		Category: model.CategoryPeopleSearch,
		OptOut:   optOutYAML{Method: model.MethodWebForm},
	}
	if errs := Validate(doc); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}
