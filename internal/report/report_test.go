package report

import (
	"strings"
	"testing"
	"time"
)

func TestComputeRiskScoreWeightsAndClamps(t *testing.T) {
	cases := []struct {
		name     string
		findings []Finding
		want     int
	}{
		{"empty", nil, 0},
		{"single critical", []Finding{{RiskLevel: "critical"}}, 25},
		{"mixed levels", []Finding{{RiskLevel: "high"}, {RiskLevel: "low"}}, 12},
		{"unknown level defaults to 5", []Finding{{RiskLevel: "unknown"}}, 5},
		{"clamped at 100", []Finding{
			{RiskLevel: "critical"}, {RiskLevel: "critical"}, {RiskLevel: "critical"},
			{RiskLevel: "critical"}, {RiskLevel: "critical"},
		}, 100},
	}
	for _, c := range cases {
		if got := ComputeRiskScore(c.findings); got != c.want {
			t.Errorf("%s: ComputeRiskScore() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestComputeRiskScoreMonotoneNonDecreasing(t *testing.T) {
	var findings []Finding
	prev := ComputeRiskScore(findings)
	for _, level := range []string{"low", "medium", "high", "critical", "low"} {
		findings = append(findings, Finding{RiskLevel: level})
		next := ComputeRiskScore(findings)
		if next < prev {
			t.Fatalf("score decreased after appending a finding: %d -> %d", prev, next)
		}
		prev = next
	}
}

func TestRiskLabelBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "LOW"}, {24, "LOW"},
		{25, "MODERATE"}, {49, "MODERATE"},
		{50, "HIGH"}, {74, "HIGH"},
		{75, "CRITICAL"}, {100, "CRITICAL"},
	}
	for _, c := range cases {
		if got := RiskLabel(c.score); got != c.want {
			t.Errorf("RiskLabel(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestGenerateIncludesAllSections(t *testing.T) {
	out := Generate(Input{
		PersonName: "Jane Doe",
		BrokerResults: []BrokerFinding{
			{BrokerName: "Spokeo", URL: "https://spokeo.com/jane", Found: true},
			{BrokerName: "NotFoundBroker", Found: false},
		},
		HIBPBreaches: []HIBPBreachFinding{
			{Name: "Adobe", BreachDate: "2013-10-04", DataClasses: []string{"Emails", "Passwords"}, Severity: "critical"},
		},
		UsernameResults: []UsernameFinding{{SiteName: "GitHub", URL: "https://github.com/jdoe", RiskLevel: "low"}},
		DorkResults:     []DorkFinding{{Title: "Resume PDF", URL: "https://example.com/resume.pdf", RiskLevel: "high"}},
		Now:             time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"Jane Doe", "2026-07-31", "Spokeo", "Adobe", "GitHub", "Resume PDF",
		"Risk Score:", "## Recommendations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	// The not-found broker shouldn't appear in the listing, only the count.
	if strings.Contains(out, "NotFoundBroker") {
		t.Errorf("report should not list brokers where Found=false")
	}
}

func TestGenerateEmptyInputStillRenders(t *testing.T) {
	out := Generate(Input{PersonName: "Jane Doe", Now: time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)})
	if !strings.Contains(out, "No data broker listings detected.") {
		t.Errorf("expected empty-broker message, got:\n%s", out)
	}
	if !strings.Contains(out, "Your digital footprint appears minimal.") {
		t.Errorf("expected minimal-footprint recommendation, got:\n%s", out)
	}
	if strings.Contains(out, "Risk Score: 0/100 (LOW)") == false {
		t.Errorf("expected LOW risk score of 0, got:\n%s", out)
	}
}
