package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scanner against a protected person",
}

func parsePersonID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid person id %q", arg)
	}
	return id, nil
}

// recordFinding stores one scanner hit, defaulting its status to active
// (spec §3 "Finding" / §4.1 severity derivation is the caller's job).
func recordFinding(cmd *cobra.Command, personID int64, source, findingType, risk, url string, data map[string]any) error {
	_, err := db.InsertFinding(cmd.Context(), &model.Finding{
		PersonID:    personID,
		Source:      source,
		FindingType: findingType,
		DataFound:   data,
		RiskLevel:   risk,
		URL:         url,
		Status:      model.FindingActive,
	})
	return err
}

var scanBreachCmd = &cobra.Command{
	Use:   "breach <person-id>",
	Short: "Run the breach scanner (HIBP + DeHashed) against every email on file",
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

		breachCfg := scanner.BreachConfig{HIBPAPIKey: cfg.HIBPAPIKey, DehashedAPIKey: cfg.DehashedAPIKey, DehashedEmail: cfg.DehashedEmail}
		total := 0
		for _, email := range person.Emails {
			result, err := scanner.ScanBreaches(cmd.Context(), email, breachCfg)
			if err != nil {
				return fmt.Errorf("scan %s: %w", email, err)
			}
			for _, b := range result.HIBPBreaches {
				if err := recordFinding(cmd, id, model.BreachSourceHIBP, "breach", b.Severity(), "",
					map[string]any{"name": b.Name, "domain": b.Domain, "data_classes": b.DataClasses}); err != nil {
					return err
				}
			}
			for _, r := range result.DehashedRecords {
				if err := recordFinding(cmd, id, model.BreachSourceDehashed, "breach", r.Severity(), "",
					map[string]any{"database": r.DatabaseName, "username": r.Username}); err != nil {
					return err
				}
			}
			total += result.Total
		}
		fmt.Printf("Breach scan complete: %d finding(s) recorded for %s\n", total, person.Name)
		return nil
	},
}

var scanDarkwebCmd = &cobra.Command{
	Use:   "darkweb <person-id>",
	Short: "Run the paste + Ahmia dark-web scanners against every email on file",
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

		total := 0
		for _, email := range person.Emails {
			result, err := scanner.ScanDarkWeb(cmd.Context(), email, cfg.HIBPAPIKey, nil)
			if err != nil {
				return fmt.Errorf("scan %s: %w", email, err)
			}
			for _, p := range result.Pastes {
				if err := recordFinding(cmd, id, "paste", "paste", p.Severity(), "",
					map[string]any{"source": p.Source, "title": p.Title}); err != nil {
					return err
				}
			}
			for _, a := range result.AhmiaResults {
				if err := recordFinding(cmd, id, "ahmia", "dark_web", a.Severity(), a.URL,
					map[string]any{"title": a.Title, "snippet": a.Snippet}); err != nil {
					return err
				}
			}
			total += result.Total
		}
		fmt.Printf("Dark-web scan complete: %d finding(s) recorded for %s\n", total, person.Name)
		return nil
	},
}

var scanHoleheCmd = &cobra.Command{
	Use:   "holehe <person-id>",
	Short: "Probe which sites a person's first email is registered on",
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
		if person.FirstEmail() == "" {
			fmt.Println("No email on file.")
			return nil
		}

		results, err := scanner.CheckEmailRegistrations(cmd.Context(), person.FirstEmail(), scanner.DefaultHoleheTimeout)
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := recordFinding(cmd, id, "holehe", "registration", r.RiskLevel(), "",
				map[string]any{"service": r.Service, "category": r.Category}); err != nil {
				return err
			}
		}
		fmt.Printf("Holehe scan complete: %d registration(s) found for %s\n", len(results), person.Name)
		return nil
	},
}

var scanUsernameCmd = &cobra.Command{
	Use:   "username <person-id>",
	Short: "Enumerate online accounts for every username on file (maigret)",
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

		total := 0
		for _, username := range person.Usernames {
			results, err := scanner.SearchUsername(cmd.Context(), username, scanner.DefaultMaigretTimeout)
			if err != nil {
				return fmt.Errorf("search %s: %w", username, err)
			}
			for _, r := range results {
				if err := recordFinding(cmd, id, "maigret", "account", model.RiskLow, r.URL,
					map[string]any{"site": r.SiteName, "tags": r.Tags}); err != nil {
					return err
				}
			}
			total += len(results)
		}
		fmt.Printf("Username scan complete: %d account(s) found for %s\n", total, person.Name)
		return nil
	},
}

var scanBrokerCmd = &cobra.Command{
	Use:   "broker <person-id> <broker-slug>",
	Short: "Probe one broker's site for a person's listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePersonID(args[0])
		if err != nil {
			return err
		}
		person, err := db.GetPerson(cmd.Context(), id)
		if err != nil {
			return err
		}
		broker, err := db.GetBrokerBySlug(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		first, last := splitPersonName(person.Name)
		result := scanner.ScanBroker(cmd.Context(), broker.Slug, broker.Name, broker.URL, first, last, "", "", 30*time.Second)
		if result.Error != "" {
			return fmt.Errorf("scan %s: %s", broker.Slug, result.Error)
		}
		if result.Found {
			if err := recordFinding(cmd, id, broker.Slug, "broker_listing", result.RiskLevel(), result.URL,
				map[string]any{"broker": broker.Name}); err != nil {
				return err
			}
		}
		fmt.Printf("%s: found=%v\n", broker.Name, result.Found)
		return nil
	},
}

var scanSocialCmd = &cobra.Command{
	Use:   "social <url>",
	Short: "Audit a public social profile URL for exposed PII",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := scanner.AuditProfile(cmd.Context(), args[0], 30*time.Second)
		if result.Error != "" {
			return fmt.Errorf("audit %s: %s", args[0], result.Error)
		}
		fmt.Printf("platform=%s privacy_score=%d flags=%v\n", result.Platform, result.PrivacyScore, result.PIIFlags)
		return nil
	},
}

var scanDorkCmd = &cobra.Command{
	Use:   "dork <person-id>",
	Short: "Print the deterministic Google-dork query list for a person",
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
		queries := scanner.BuildDorkQueries(person.Name, person.FirstEmail(), person.FirstPhone(), person.FirstAddress())
		for _, q := range queries {
			fmt.Println(q)
		}
		return nil
	},
}

func splitPersonName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], fields[len(fields)-1]
}

func init() {
	scanCmd.AddCommand(scanBreachCmd, scanDarkwebCmd, scanHoleheCmd, scanUsernameCmd, scanBrokerCmd, scanSocialCmd, scanDorkCmd)
	rootCmd.AddCommand(scanCmd)
}
