package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/untoldecay/footprint/internal/model"
)

// Status is the aggregate counts view returned by Store.Status (spec §4.1).
type Status struct {
	PersonsCount int
	BrokersCount int
	Findings     map[string]int
	Removals     map[string]int
	BreachesCount int
	LastScan     *string
}

// Status returns counts across every entity, grouped the way db.py's
// get_status does: findings/removals broken down by status, plus the most
// recent scan timestamp.
func (s *Store) Status(ctx context.Context) (*Status, error) {
	st := &Status{
		Findings: map[string]int{},
		Removals: map[string]int{},
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&st.PersonsCount); err != nil {
		return nil, fmt.Errorf("count persons: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brokers`).Scan(&st.BrokersCount); err != nil {
		return nil, fmt.Errorf("count brokers: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM breaches`).Scan(&st.BreachesCount); err != nil {
		return nil, fmt.Errorf("count breaches: %w", err)
	}

	for _, status := range []string{model.FindingActive, model.FindingRemovalPending, model.FindingRemoved} {
		var c int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM findings WHERE status = ?`, status).Scan(&c); err != nil {
			return nil, fmt.Errorf("count findings %s: %w", status, err)
		}
		st.Findings[status] = c
	}

	for _, status := range []string{model.RemovalPending, model.RemovalSubmitted, model.RemovalConfirmed} {
		var c int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM removals WHERE status = ?`, status).Scan(&c); err != nil {
			return nil, fmt.Errorf("count removals %s: %w", status, err)
		}
		st.Removals[status] = c
	}

	var last sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(started_at) FROM pipeline_runs`).Scan(&last); err != nil {
		return nil, fmt.Errorf("last scan: %w", err)
	}
	if last.Valid {
		st.LastScan = &last.String
	}

	return st, nil
}
