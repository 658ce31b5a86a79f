// Package pipeline runs the end-to-end protection pipeline: breach and
// dark-web scanning across every email on file, report generation, and risk
// scoring (spec §4.6 "Pipeline"). Grounded on
// original_source/digital_footprint/pipeline/pipeline.py, with the per-email
// scans run concurrently via errgroup rather than the original's sequential
// loop (spec §9 "Concurrency expansion").
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/untoldecay/footprint/internal/config"
	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/report"
	"github.com/untoldecay/footprint/internal/scanner"
	"github.com/untoldecay/footprint/internal/store"
)

// MaxConcurrentScans bounds the number of emails scanned in parallel per
// pipeline run.
const MaxConcurrentScans = 4

// Result mirrors one pipeline_runs row plus the rendered report text.
type Result struct {
	PersonID          int64
	RunID             int64
	StartedAt         time.Time
	CompletedAt       time.Time
	Status            string
	BreachesFound     int
	DarkWebFindings   int
	AccountsFound     int
	RemovalsSubmitted int
	RiskScore         int
	Report            string
	Error             string
}

// Pipeline runs ProtectPerson against a store and config.
type Pipeline struct {
	Store  *store.Store
	Config *config.Config
	Logger zerolog.Logger
}

type scanOutcome struct {
	breach  scanner.BreachResult
	darkWeb scanner.DarkWebResult
}

// ProtectPerson scans every email on file for a person, generates an
// exposure report, and records a PipelineRun. Per-email scan failures are
// logged and treated as empty results rather than failing the run — only a
// missing person is a pipeline error (spec §7 category 1).
func (p *Pipeline) ProtectPerson(ctx context.Context, personID int64) (Result, error) {
	started := time.Now().UTC()

	person, err := p.Store.GetPerson(ctx, personID)
	if err != nil {
		return Result{}, fmt.Errorf("person %d: %w", personID, err)
	}

	runID, err := p.Store.InsertPipelineRun(ctx, personID, started)
	if err != nil {
		return Result{}, fmt.Errorf("create pipeline run: %w", err)
	}

	outcomes := p.scanEmails(ctx, person.Emails)

	var hibpBreaches []scanner.HIBPBreach
	var dehashedRecords []scanner.DehashedRecord
	var pastes []scanner.PasteResult
	breachTotal, darkWebTotal := 0, 0
	for _, o := range outcomes {
		hibpBreaches = append(hibpBreaches, o.breach.HIBPBreaches...)
		dehashedRecords = append(dehashedRecords, o.breach.DehashedRecords...)
		pastes = append(pastes, o.darkWeb.Pastes...)
		breachTotal += o.breach.Total
		darkWebTotal += o.darkWeb.Total
	}

	accountsFound := len(person.Usernames)

	riskScore := computeRiskScore(hibpBreaches, dehashedRecords, pastes)

	reportText := report.Generate(report.Input{
		PersonName:      person.Name,
		HIBPBreaches:    toHIBPFindings(hibpBreaches),
		DehashedRecords: toDehashedFindings(dehashedRecords),
		UsernameResults: toUsernameFindings(person.Usernames),
		Now:             started,
	})

	completed := time.Now().UTC()
	if err := p.Store.UpdatePipelineRun(ctx, runID, store.PipelineRunTerminal{
		CompletedAt:       completed,
		Status:            model.RunCompleted,
		BreachesFound:     breachTotal,
		DarkWebFindings:   darkWebTotal,
		AccountsFound:     accountsFound,
		RemovalsSubmitted: 0,
		RiskScore:         riskScore,
	}); err != nil {
		return Result{}, fmt.Errorf("finalize pipeline run %d: %w", runID, err)
	}

	return Result{
		PersonID:        personID,
		RunID:           runID,
		StartedAt:       started,
		CompletedAt:     completed,
		Status:          model.RunCompleted,
		BreachesFound:   breachTotal,
		DarkWebFindings: darkWebTotal,
		AccountsFound:   accountsFound,
		RiskScore:       riskScore,
		Report:          reportText,
	}, nil
}

// scanEmails runs breach and dark-web scans for each email concurrently,
// bounded by MaxConcurrentScans. A scan that errors contributes an empty
// outcome rather than aborting the others.
func (p *Pipeline) scanEmails(ctx context.Context, emails []string) []scanOutcome {
	outcomes := make([]scanOutcome, len(emails))
	if len(emails) == 0 {
		return outcomes
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentScans)

	var mu sync.Mutex
	for i, email := range emails {
		i, email := i, email
		g.Go(func() error {
			breachResult, err := scanner.ScanBreaches(gctx, email, scanner.BreachConfig{
				HIBPAPIKey:     p.Config.HIBPAPIKey,
				DehashedAPIKey: p.Config.DehashedAPIKey,
				DehashedEmail:  p.Config.DehashedEmail,
			})
			if err != nil {
				p.Logger.Warn().Err(err).Str("email", email).Msg("breach check failed")
			}

			darkWebResult, err := scanner.ScanDarkWeb(gctx, email, p.Config.HIBPAPIKey, nil)
			if err != nil {
				p.Logger.Warn().Err(err).Str("email", email).Msg("dark web scan failed")
			}

			mu.Lock()
			outcomes[i] = scanOutcome{breach: breachResult, darkWeb: darkWebResult}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // scanEmails never fails the pipeline; per-email errors are logged above

	return outcomes
}

func computeRiskScore(hibp []scanner.HIBPBreach, dehashed []scanner.DehashedRecord, pastes []scanner.PasteResult) int {
	var findings []report.Finding
	for _, b := range hibp {
		findings = append(findings, report.Finding{RiskLevel: b.Severity()})
	}
	for _, r := range dehashed {
		findings = append(findings, report.Finding{RiskLevel: r.Severity()})
	}
	for _, pa := range pastes {
		findings = append(findings, report.Finding{RiskLevel: pa.Severity()})
	}
	return report.ComputeRiskScore(findings)
}

func toHIBPFindings(in []scanner.HIBPBreach) []report.HIBPBreachFinding {
	out := make([]report.HIBPBreachFinding, 0, len(in))
	for _, b := range in {
		out = append(out, report.HIBPBreachFinding{
			Name:        b.Title,
			BreachDate:  b.BreachDate,
			DataClasses: b.DataClasses,
			Severity:    b.Severity(),
		})
	}
	return out
}

func toDehashedFindings(in []scanner.DehashedRecord) []report.DehashedFinding {
	out := make([]report.DehashedFinding, 0, len(in))
	for _, r := range in {
		out = append(out, report.DehashedFinding{DatabaseName: r.DatabaseName, Severity: r.Severity()})
	}
	return out
}

func toUsernameFindings(usernames []string) []report.UsernameFinding {
	out := make([]report.UsernameFinding, 0, len(usernames))
	for _, u := range usernames {
		out = append(out, report.UsernameFinding{SiteName: u, RiskLevel: model.RiskLow})
	}
	return out
}
