package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/untoldecay/footprint/internal/model"
)

const breachSelect = `
	SELECT id, person_id, breach_name, source, breach_date, data_types, severity, discovered_at, action_taken
	FROM breaches`

// InsertBreach records a single credential/paste exposure.
func (s *Store) InsertBreach(ctx context.Context, b *model.Breach) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO breaches (person_id, breach_name, source, breach_date, data_types, severity, discovered_at, action_taken)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PersonID, b.BreachName, b.Source, b.BreachDate, encodeList(b.DataTypes), b.Severity,
		now().Format(sqliteTimeFormat), b.ActionTaken,
	)
	if err != nil {
		return 0, fmt.Errorf("insert breach: %w", err)
	}
	return res.LastInsertId()
}

// ListBreachesByPerson returns every breach recorded for a person.
func (s *Store) ListBreachesByPerson(ctx context.Context, personID int64) ([]*model.Breach, error) {
	rows, err := s.db.QueryContext(ctx, breachSelect+` WHERE person_id = ? ORDER BY discovered_at DESC`, personID)
	if err != nil {
		return nil, fmt.Errorf("list breaches: %w", err)
	}
	defer rows.Close()

	var out []*model.Breach
	for rows.Next() {
		b, err := scanBreach(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBreach(row rowScanner) (*model.Breach, error) {
	var b model.Breach
	var dataTypes, discoveredAt string
	err := row.Scan(&b.ID, &b.PersonID, &b.BreachName, &b.Source, &b.BreachDate, &dataTypes,
		&b.Severity, &discoveredAt, &b.ActionTaken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("breach not found")
		}
		return nil, fmt.Errorf("scan breach: %w", err)
	}
	b.DataTypes = decodeList(dataTypes)
	b.DiscoveredAt = parseSQLiteTime(discoveredAt)
	return &b, nil
}
