//go:build unix

package scanner

import "testing"

func TestParseHoleheOutputCurrentCSVShape(t *testing.T) {
	csv := "Name,Domain,Exists,Rate Limit,Others\n" +
		"twitter,twitter.com,True,False,\n" +
		"github,github.com,False,False,\n"

	results := ParseHoleheOutput(csv)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (only Exists=True rows)", len(results))
	}
	if results[0].Exists != true {
		t.Errorf("Exists = %v, want true", results[0].Exists)
	}
}

func TestParseHoleheOutputLegacyShape(t *testing.T) {
	csv := "service,Used,category\n" +
		"instagram,used,social\n" +
		"chase,not used,financial\n"

	results := ParseHoleheOutput(csv)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Service != "instagram" || results[0].Category != "social" {
		t.Errorf("got %+v", results[0])
	}
}

func TestParseHoleheOutputEmpty(t *testing.T) {
	if out := ParseHoleheOutput(""); out != nil {
		t.Errorf("ParseHoleheOutput(\"\") = %v, want nil", out)
	}
	if out := ParseHoleheOutput("Name,Domain,Exists,Rate Limit,Others\n"); len(out) != 0 {
		t.Errorf("header-only input produced results: %v", out)
	}
}

func TestHoleheResultRiskLevel(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"dating", "high"},
		{"financial", "high"},
		{"social", "medium"},
		{"forum", "medium"},
		{"other", "low"},
		{"", "low"},
	}
	for _, c := range cases {
		h := HoleheResult{Category: c.category}
		if got := h.RiskLevel(); got != c.want {
			t.Errorf("RiskLevel(%q) = %q, want %q", c.category, got, c.want)
		}
	}
}
