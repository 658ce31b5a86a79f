package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/untoldecay/footprint/internal/model"
)

// UpsertBrokerBySlug inserts a broker or replaces the existing row sharing
// its slug — later registry loads replace prior entries (spec §4.2).
func (s *Store) UpsertBrokerBySlug(ctx context.Context, b *model.Broker) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brokers (slug, name, url, category, opt_out_method, opt_out_url, opt_out_email,
			opt_out_phone, opt_out_mail, opt_out_steps, difficulty, automatable, recheck_days,
			ccpa_compliant, gdpr_compliant, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name=excluded.name, url=excluded.url, category=excluded.category,
			opt_out_method=excluded.opt_out_method, opt_out_url=excluded.opt_out_url,
			opt_out_email=excluded.opt_out_email, opt_out_phone=excluded.opt_out_phone,
			opt_out_mail=excluded.opt_out_mail, opt_out_steps=excluded.opt_out_steps,
			difficulty=excluded.difficulty, automatable=excluded.automatable,
			recheck_days=excluded.recheck_days, ccpa_compliant=excluded.ccpa_compliant,
			gdpr_compliant=excluded.gdpr_compliant, notes=excluded.notes`,
		b.Slug, b.Name, b.URL, b.Category, b.OptOutMethod, b.OptOutURL, b.OptOutEmail,
		b.OptOutPhone, b.OptOutMail, encodeList(b.OptOutSteps), b.Difficulty,
		boolToInt(b.Automatable), b.RecheckDays, boolToInt(b.CCPACompliant), boolToInt(b.GDPRCompliant), b.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert broker %s: %w", b.Slug, err)
	}
	return s.brokerIDBySlug(ctx, b.Slug)
}

func (s *Store) brokerIDBySlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM brokers WHERE slug = ?`, slug).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup broker id: %w", err)
	}
	return id, nil
}

// GetBrokerBySlug fetches a broker by its slug.
func (s *Store) GetBrokerBySlug(ctx context.Context, slug string) (*model.Broker, error) {
	row := s.db.QueryRowContext(ctx, brokerSelect+` WHERE slug = ?`, slug)
	return scanBroker(row)
}

// GetBroker fetches a broker by id.
func (s *Store) GetBroker(ctx context.Context, id int64) (*model.Broker, error) {
	row := s.db.QueryRowContext(ctx, brokerSelect+` WHERE id = ?`, id)
	return scanBroker(row)
}

// BrokerFilter narrows ListBrokers; zero values mean "no filter".
type BrokerFilter struct {
	Category    string
	Difficulty  string
	Automatable *bool
}

const brokerSelect = `
	SELECT id, slug, name, url, category, opt_out_method, opt_out_url, opt_out_email,
		opt_out_phone, opt_out_mail, opt_out_steps, difficulty, automatable, recheck_days,
		ccpa_compliant, gdpr_compliant, notes
	FROM brokers`

// ListBrokers returns brokers matching the filter, ordered by slug.
func (s *Store) ListBrokers(ctx context.Context, filter BrokerFilter) ([]*model.Broker, error) {
	query := brokerSelect
	var where []string
	var args []any

	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}
	if filter.Automatable != nil {
		where = append(where, "automatable = ?")
		args = append(args, boolToInt(*filter.Automatable))
	}
	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	query += " ORDER BY slug"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brokers: %w", err)
	}
	defer rows.Close()

	var out []*model.Broker
	for rows.Next() {
		b, err := scanBroker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BrokerStats aggregates counts by category/difficulty/method and the
// automatable flag (supplemented feature, grounded on db.py's broker_stats).
type BrokerStats struct {
	Total         int
	ByCategory    map[string]int
	ByDifficulty  map[string]int
	ByMethod      map[string]int
	AutomatableCount int
}

// BrokerStats computes aggregate broker counts.
func (s *Store) BrokerStats(ctx context.Context) (*BrokerStats, error) {
	brokers, err := s.ListBrokers(ctx, BrokerFilter{})
	if err != nil {
		return nil, err
	}

	stats := &BrokerStats{
		ByCategory:   map[string]int{},
		ByDifficulty: map[string]int{},
		ByMethod:     map[string]int{},
	}
	for _, b := range brokers {
		stats.Total++
		stats.ByCategory[b.Category]++
		stats.ByDifficulty[b.Difficulty]++
		if b.OptOutMethod != "" {
			stats.ByMethod[b.OptOutMethod]++
		}
		if b.Automatable {
			stats.AutomatableCount++
		}
	}
	return stats, nil
}

func scanBroker(row rowScanner) (*model.Broker, error) {
	var b model.Broker
	var steps string
	var automatable, ccpa, gdpr int

	err := row.Scan(&b.ID, &b.Slug, &b.Name, &b.URL, &b.Category, &b.OptOutMethod, &b.OptOutURL,
		&b.OptOutEmail, &b.OptOutPhone, &b.OptOutMail, &steps, &b.Difficulty, &automatable,
		&b.RecheckDays, &ccpa, &gdpr, &b.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBrokerNotFound
		}
		return nil, fmt.Errorf("scan broker: %w", err)
	}

	b.OptOutSteps = decodeList(steps)
	b.Automatable = intToBool(automatable)
	b.CCPACompliant = intToBool(ccpa)
	b.GDPRCompliant = intToBool(gdpr)
	return &b, nil
}

func joinAnd(clauses []string) string {
	out := clauses[0]
	for _, c := range clauses[1:] {
		out += " AND " + c
	}
	return out
}
