// Package verify re-scans a broker site for a submitted removal and drives
// the submitted -> confirmed / still_found / failed transitions (spec §4.5
// "Verification"). Grounded on
// original_source/digital_footprint/removers/verification.py.
package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/scanner"
	"github.com/untoldecay/footprint/internal/store"
)

// DefaultTimeout bounds the re-scan's browser navigation.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of verifying a single removal.
type Result struct {
	RemovalID int64
	Status    string // confirmed, still_found, failed, skipped; VerifyPending adds error
	Attempts  int
	Message   string
}

// Verifier re-scans submitted removals against their broker's search URL
// and updates the stored removal row to reflect what it found.
type Verifier struct {
	Store   *store.Store
	Timeout time.Duration
}

func (v *Verifier) timeout() time.Duration {
	if v.Timeout > 0 {
		return v.Timeout
	}
	return DefaultTimeout
}

// VerifySingle re-scans one removal. A broker with no search URL pattern
// can't be re-checked and is skipped without changing its stored status.
func (v *Verifier) VerifySingle(ctx context.Context, removal *model.Removal) (Result, error) {
	broker, err := v.Store.GetBroker(ctx, removal.BrokerID)
	if err != nil {
		return Result{}, fmt.Errorf("broker %d: %w", removal.BrokerID, err)
	}
	if strings.TrimSpace(broker.URL) == "" {
		return Result{RemovalID: removal.ID, Status: "skipped", Message: "no search URL pattern for broker"}, nil
	}

	person, err := v.Store.GetPerson(ctx, removal.PersonID)
	if err != nil {
		return Result{}, fmt.Errorf("person %d: %w", removal.PersonID, err)
	}
	first, last := splitName(person.Name)

	scanResult := scanner.ScanBroker(ctx, broker.Slug, broker.Name, broker.URL, first, last, "", "", v.timeout())

	now := time.Now().UTC()
	result := Result{RemovalID: removal.ID}

	if !scanResult.Found {
		result.Status = model.RemovalConfirmed
		if err := v.Store.UpdateRemoval(ctx, removal.ID, store.RemovalUpdate{
			Status:           strPtr(model.RemovalConfirmed),
			SetConfirmedAt:   true,
			ConfirmedAt:      &now,
			SetLastCheckedAt: true,
			LastCheckedAt:    &now,
		}); err != nil {
			return Result{}, fmt.Errorf("update removal %d: %w", removal.ID, err)
		}
		return result, nil
	}

	attempts := removal.Attempts + 1
	result.Attempts = attempts

	if attempts > model.MaxVerificationAttempts {
		result.Status = model.RemovalFailed
		result.Message = fmt.Sprintf("still found on %s after %d checks", broker.Name, attempts)
		if err := v.Store.UpdateRemoval(ctx, removal.ID, store.RemovalUpdate{
			Status:           strPtr(model.RemovalFailed),
			Attempts:         &attempts,
			SetLastCheckedAt: true,
			LastCheckedAt:    &now,
		}); err != nil {
			return Result{}, fmt.Errorf("update removal %d: %w", removal.ID, err)
		}
		return result, nil
	}

	result.Status = model.RemovalStillFound
	result.Message = fmt.Sprintf("still listed on %s, will re-check", broker.Name)
	nextCheck := now.AddDate(0, 0, recheckDays(broker.RecheckDays))
	if err := v.Store.UpdateRemoval(ctx, removal.ID, store.RemovalUpdate{
		Status:           strPtr(model.RemovalStillFound),
		Attempts:         &attempts,
		SetLastCheckedAt: true,
		LastCheckedAt:    &now,
		SetNextCheckAt:   true,
		NextCheckAt:      &nextCheck,
	}); err != nil {
		return Result{}, fmt.Errorf("update removal %d: %w", removal.ID, err)
	}
	return result, nil
}

// VerifyPending runs VerifySingle over every removal due for re-checking,
// continuing past a single removal's error rather than aborting the batch.
func (v *Verifier) VerifyPending(ctx context.Context) ([]Result, error) {
	pending, err := v.Store.PendingVerifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending verifications: %w", err)
	}

	results := make([]Result, 0, len(pending))
	for _, r := range pending {
		result, err := v.VerifySingle(ctx, r)
		if err != nil {
			results = append(results, Result{RemovalID: r.ID, Status: "error", Message: err.Error()})
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

func recheckDays(days int) int {
	if days <= 0 {
		return 7
	}
	return days
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[len(parts)-1]
}

func strPtr(s string) *string { return &s }
