package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/report"
)

var reportSince string

var reportCmd = &cobra.Command{
	Use:   "report <person-id>",
	Short: "Render a person's current exposure report from stored findings and breaches",
	Long:  "Writes the rendered Markdown to <db-dir>/reports/<date>-<slug>.md, the same naming scheme the generate_report scheduled job uses (spec §4.7).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePersonID(args[0])
		if err != nil {
			return err
		}
		person, err := db.GetPerson(cmd.Context(), id)
		if err != nil {
			return err
		}

		cutoff, err := parseSince(reportSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}

		findings, err := db.ListFindingsByPerson(cmd.Context(), id)
		if err != nil {
			return err
		}
		breaches, err := db.ListBreachesByPerson(cmd.Context(), id)
		if err != nil {
			return err
		}

		var brokerFindings []report.BrokerFinding
		var dorkFindings []report.DorkFinding
		for _, f := range findings {
			if !cutoff.IsZero() && f.DiscoveredAt.Before(cutoff) {
				continue
			}
			switch f.FindingType {
			case "broker_listing":
				brokerFindings = append(brokerFindings, report.BrokerFinding{BrokerName: f.Source, URL: f.URL, Found: true})
			case "dark_web":
				dorkFindings = append(dorkFindings, report.DorkFinding{Title: f.Source, URL: f.URL, RiskLevel: f.RiskLevel})
			}
		}

		var hibpFindings []report.HIBPBreachFinding
		for _, b := range breaches {
			if !cutoff.IsZero() && b.DiscoveredAt.Before(cutoff) {
				continue
			}
			hibpFindings = append(hibpFindings, report.HIBPBreachFinding{
				Name: b.BreachName, BreachDate: b.BreachDate, DataClasses: b.DataTypes, Severity: b.Severity,
			})
		}

		text := report.Generate(report.Input{
			PersonName:    person.Name,
			BrokerResults: brokerFindings,
			HIBPBreaches:  hibpFindings,
			DorkResults:   dorkFindings,
			Now:           time.Now(),
		})

		reportsDir := filepath.Join(filepath.Dir(cfg.DBPath), "reports")
		if err := os.MkdirAll(reportsDir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(reportsDir, fmt.Sprintf("%s-%s.md", time.Now().Format("2006-01-02"), slug(person.Name)))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n\n", path)
		fmt.Print(text)
		return nil
	},
}

// parseSince resolves a natural-language relative date ("3 days ago") to an
// absolute cutoff time via olebedev/when; an empty string means "no
// cutoff" and returns the zero time.
func parseSince(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(s, time.Now())
	if err != nil {
		return time.Time{}, err
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("could not parse relative date %q", s)
	}
	return result.Time, nil
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}

func init() {
	reportCmd.Flags().StringVar(&reportSince, "since", "", `only include findings discovered after this relative date (e.g. "3 days ago")`)
	rootCmd.AddCommand(reportCmd)
}
