package removal

import (
	"context"
	"fmt"
	"time"

	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/removal/email"
	"github.com/untoldecay/footprint/internal/removal/manual"
	"github.com/untoldecay/footprint/internal/removal/webform"
	"github.com/untoldecay/footprint/internal/store"
)

// Orchestrator selects the remover for a broker's declared method,
// normalises person/broker contexts, invokes the handler, and records the
// resulting Removal row (spec §4.5 "Dispatch" / "Record").
type Orchestrator struct {
	Store       *store.Store
	EmailConfig email.Config
	// WebFormTimeout bounds the stealth-browser navigation for web-form
	// removals; zero uses browser.DefaultNavigationTimeout.
	WebFormTimeout time.Duration
}

// SubmitRemoval resolves the person and broker, dispatches to the matching
// handler by opt_out_method, and records a Removal row reflecting the
// outcome. A missing person or broker is a caller-visible error with no
// state change (spec §7 category 5).
func (o *Orchestrator) SubmitRemoval(ctx context.Context, personID int64, brokerSlug string) (Outcome, error) {
	person, err := o.Store.GetPerson(ctx, personID)
	if err != nil {
		return Outcome{}, fmt.Errorf("person %d: %w", personID, err)
	}
	broker, err := o.Store.GetBrokerBySlug(ctx, brokerSlug)
	if err != nil {
		return Outcome{}, fmt.Errorf("broker %q: %w", brokerSlug, err)
	}

	personCtx := NewPersonCtx(person)
	brokerCtx := NewBrokerCtx(broker)

	outcome := o.dispatch(ctx, personCtx, brokerCtx)

	removalRow := &model.Removal{
		PersonID:    personID,
		BrokerID:    broker.ID,
		Method:      brokerCtx.OptOutMethod,
		Status:      outcome.Status,
		ReferenceID: outcome.ReferenceID,
	}
	if outcome.SubmittedAt != nil {
		if t, err := time.Parse(time.RFC3339, *outcome.SubmittedAt); err == nil {
			removalRow.SubmittedAt = &t
		}
	}
	if outcome.Status == StatusSubmitted && broker.RecheckDays > 0 {
		next := time.Now().UTC().AddDate(0, 0, broker.RecheckDays)
		removalRow.NextCheckAt = &next
	}

	if _, err := o.Store.InsertRemoval(ctx, removalRow); err != nil {
		return outcome, fmt.Errorf("record removal: %w", err)
	}

	return outcome, nil
}

// dispatch pattern-matches the broker's opt-out method to the remover that
// handles it (spec §9 "Tagged variants over dynamic dispatch"): email, web
// form, or the manual fallback for phone/mail/unknown.
func (o *Orchestrator) dispatch(ctx context.Context, person PersonCtx, broker BrokerCtx) Outcome {
	switch broker.OptOutMethod {
	case model.MethodEmail:
		return email.Submit(o.EmailConfig, person, broker)
	case model.MethodWebForm:
		return webform.Submit(ctx, person, broker, o.WebFormTimeout)
	default: // phone, mail, api, unknown -> manual instructions
		return manual.Submit(person, broker)
	}
}

// RemovalStatusSummary is the per-status breakdown Status returns.
type RemovalStatusSummary struct {
	PersonID int64
	Total    int
	ByStatus map[string]int
	Removals []*model.Removal
}

// Status returns every removal for a person, summarised by status.
func (o *Orchestrator) Status(ctx context.Context, personID int64) (*RemovalStatusSummary, error) {
	removals, err := o.Store.ListRemovalsByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	for _, r := range removals {
		byStatus[r.Status]++
	}

	return &RemovalStatusSummary{
		PersonID: personID,
		Total:    len(removals),
		ByStatus: byStatus,
		Removals: removals,
	}, nil
}
