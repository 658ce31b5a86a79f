package scanner

import (
	"strings"
	"testing"
)

func TestBuildDorkQueriesDeterministicAndOrdered(t *testing.T) {
	q1 := BuildDorkQueries("Jane Doe", "jane@example.com", "555-0100", "1 Main St")
	q2 := BuildDorkQueries("Jane Doe", "jane@example.com", "555-0100", "1 Main St")

	if len(q1) != len(q2) {
		t.Fatalf("got different lengths across calls: %d vs %d", len(q1), len(q2))
	}
	for i := range q1 {
		if q1[i] != q2[i] {
			t.Errorf("query[%d] differs across identical calls: %q vs %q", i, q1[i], q2[i])
		}
	}

	want := []string{
		`"Jane Doe"`,
		`"Jane Doe" "jane@example.com"`,
		`site:pastebin.com "jane@example.com"`,
		`"jane@example.com"`,
		`"Jane Doe" "555-0100"`,
		`"555-0100"`,
		`"Jane Doe" "1 Main St"`,
		`filetype:pdf "Jane Doe"`,
		`filetype:xls "Jane Doe"`,
	}
	if len(q1) != len(want) {
		t.Fatalf("got %d queries, want %d: %v", len(q1), len(want), q1)
	}
	for i, w := range want {
		if q1[i] != w {
			t.Errorf("query[%d] = %q, want %q", i, q1[i], w)
		}
	}
}

func TestBuildDorkQueriesOmitsMissingFields(t *testing.T) {
	queries := BuildDorkQueries("Jane Doe", "", "", "")
	for _, q := range queries {
		if q == "" {
			continue
		}
		if strings.Contains(q, "site:pastebin.com") || strings.Contains(q, `""`) {
			t.Errorf("query %q should not reference an empty email/phone/address", q)
		}
	}
	// Name-only still yields the name query and the filetype dorks.
	want := []string{`"Jane Doe"`, `filetype:pdf "Jane Doe"`, `filetype:xls "Jane Doe"`}
	if len(queries) != len(want) {
		t.Fatalf("got %d queries, want %d: %v", len(queries), len(want), queries)
	}
}

func TestDorkResultRiskLevel(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://pastebin.com/abc123", "high"},
		{"https://doxbin.com/leak", "high"},
		{"https://example.com/resume.pdf", "high"},
		{"https://example.com/resume.docx", "high"},
		{"https://example.com/profile", "medium"},
	}
	for _, c := range cases {
		d := DorkResult{URL: c.url}
		if got := d.RiskLevel(); got != c.want {
			t.Errorf("RiskLevel(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
