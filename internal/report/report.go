// Package report formats accumulated findings into a Markdown exposure
// report and computes the bounded risk score that drives it (spec §4.4).
// Grounded on original_source/digital_footprint/reporters/exposure_report.py.
package report

import (
	"fmt"
	"strings"
	"time"
)

// riskWeights assigns a point value to each risk level for ComputeRiskScore.
var riskWeights = map[string]int{
	"critical": 25,
	"high":     10,
	"medium":   5,
	"low":      2,
}

// Finding is the minimal shape ComputeRiskScore needs: a risk level. Any
// scanner result type that exposes RiskLevel() can be adapted into one.
type Finding struct {
	RiskLevel string
}

// ComputeRiskScore sums per-finding weights and clamps to [0, 100] (spec
// §4.4, testable property 4: monotone non-decreasing as findings are
// appended).
func ComputeRiskScore(findings []Finding) int {
	score := 0
	for _, f := range findings {
		w, ok := riskWeights[f.RiskLevel]
		if !ok {
			w = 5
		}
		score += w
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RiskLabel partitions [0,100] into four bands, boundary-inclusive at the
// lower edge (spec §4.4, testable property 5).
func RiskLabel(score int) string {
	switch {
	case score >= 75:
		return "CRITICAL"
	case score >= 50:
		return "HIGH"
	case score >= 25:
		return "MODERATE"
	default:
		return "LOW"
	}
}

// BrokerFinding is one broker-scan row shown in the report.
type BrokerFinding struct {
	BrokerName string
	URL        string
	Found      bool
}

// HIBPBreachFinding is one breach row.
type HIBPBreachFinding struct {
	Name        string
	BreachDate  string
	DataClasses []string
	Severity    string
}

// DehashedFinding is one DeHashed record row.
type DehashedFinding struct {
	DatabaseName string
	Severity     string
}

// UsernameFinding is one discovered online account.
type UsernameFinding struct {
	SiteName  string
	URL       string
	RiskLevel string
}

// DorkFinding is one search-exposure hit.
type DorkFinding struct {
	Title     string
	URL       string
	RiskLevel string
}

// Input bundles every source category the exposure report renders, in the
// fixed section order spec §4.4 defines: brokers, breaches, accounts,
// search exposure.
type Input struct {
	PersonName      string
	BrokerResults   []BrokerFinding
	HIBPBreaches    []HIBPBreachFinding
	DehashedRecords []DehashedFinding
	UsernameResults []UsernameFinding
	DorkResults     []DorkFinding
	Now             time.Time
}

// Generate renders the Markdown exposure report: a header with the subject,
// date, and risk score/label, one section per source category, and a
// recommendations section driven by which categories are non-empty (spec
// §4.4).
func Generate(in Input) string {
	var findings []Finding
	var foundBrokers []BrokerFinding
	for _, b := range in.BrokerResults {
		if b.Found {
			foundBrokers = append(foundBrokers, b)
			findings = append(findings, Finding{RiskLevel: "high"})
		}
	}
	for _, b := range in.HIBPBreaches {
		findings = append(findings, Finding{RiskLevel: b.Severity})
	}
	for _, r := range in.DehashedRecords {
		findings = append(findings, Finding{RiskLevel: r.Severity})
	}
	for _, u := range in.UsernameResults {
		findings = append(findings, Finding{RiskLevel: u.RiskLevel})
	}
	for _, d := range in.DorkResults {
		findings = append(findings, Finding{RiskLevel: d.RiskLevel})
	}

	score := ComputeRiskScore(findings)
	label := RiskLabel(score)

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Digital Footprint Exposure Report\n\n")
	fmt.Fprintf(&b, "**Subject:** %s\n", in.PersonName)
	fmt.Fprintf(&b, "**Date:** %s\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Risk Score: %d/100 (%s)**\n\n", score, label)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## Data Broker Exposure (%d found)\n\n", len(foundBrokers))
	if len(foundBrokers) > 0 {
		for _, broker := range foundBrokers {
			fmt.Fprintf(&b, "- **%s**: %s\n", broker.BrokerName, orNA(broker.URL))
		}
	} else {
		b.WriteString("No data broker listings detected.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Data Breaches (%d breaches, %d records)\n\n", len(in.HIBPBreaches), len(in.DehashedRecords))
	for _, breach := range in.HIBPBreaches {
		date := breach.BreachDate
		if date == "" {
			date = "unknown"
		}
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", breach.Name, date, strings.Join(breach.DataClasses, ", "))
	}
	for _, rec := range in.DehashedRecords {
		name := rec.DatabaseName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "- **%s**: Exposed record found\n", name)
	}
	if len(in.HIBPBreaches) == 0 && len(in.DehashedRecords) == 0 {
		b.WriteString("No breach records found.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Online Accounts (%d found)\n\n", len(in.UsernameResults))
	if len(in.UsernameResults) > 0 {
		for _, u := range in.UsernameResults {
			fmt.Fprintf(&b, "- **%s**: %s\n", u.SiteName, orNA(u.URL))
		}
	} else {
		b.WriteString("No accounts discovered.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Google Exposure (%d results)\n\n", len(in.DorkResults))
	if len(in.DorkResults) > 0 {
		for _, d := range in.DorkResults {
			title := d.Title
			if title == "" {
				title = "Link"
			}
			fmt.Fprintf(&b, "- [%s](%s)\n", title, d.URL)
		}
	} else {
		b.WriteString("No exposed documents or pastes found.\n")
	}
	b.WriteString("\n---\n\n## Recommendations\n\n")

	if len(foundBrokers) > 0 {
		b.WriteString("1. **Submit opt-out requests** to all detected data brokers\n")
	}
	if len(in.HIBPBreaches) > 0 {
		b.WriteString("2. **Change passwords** for all breached accounts\n")
		b.WriteString("3. **Enable 2FA** on critical accounts\n")
	}
	if len(in.UsernameResults) > 0 {
		b.WriteString("4. **Review privacy settings** on discovered accounts\n")
	}
	if len(findings) == 0 {
		b.WriteString("Your digital footprint appears minimal. Continue monitoring.\n")
	}
	b.WriteString("\n")

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
