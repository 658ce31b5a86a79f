package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/untoldecay/footprint/internal/model"
)

const findingSelect = `
	SELECT id, person_id, broker_id, source, finding_type, data_found, risk_level, url,
		screenshot_path, status, discovered_at, updated_at
	FROM findings`

// InsertFinding records a single discovered exposure.
func (s *Store) InsertFinding(ctx context.Context, f *model.Finding) (int64, error) {
	nowStr := now().Format(sqliteTimeFormat)
	status := f.Status
	if status == "" {
		status = model.FindingActive
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO findings (person_id, broker_id, source, finding_type, data_found, risk_level,
			url, screenshot_path, status, discovered_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.PersonID, f.BrokerID, f.Source, f.FindingType, encodeMap(f.DataFound), f.RiskLevel,
		f.URL, f.ScreenshotPath, status, nowStr, nowStr,
	)
	if err != nil {
		return 0, fmt.Errorf("insert finding: %w", err)
	}
	return res.LastInsertId()
}

// GetFinding fetches a finding by id.
func (s *Store) GetFinding(ctx context.Context, id int64) (*model.Finding, error) {
	row := s.db.QueryRowContext(ctx, findingSelect+` WHERE id = ?`, id)
	return scanFinding(row)
}

// ListFindingsByPerson returns all findings for a person, most recent first.
func (s *Store) ListFindingsByPerson(ctx context.Context, personID int64) ([]*model.Finding, error) {
	rows, err := s.db.QueryContext(ctx, findingSelect+` WHERE person_id = ? ORDER BY discovered_at DESC`, personID)
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}
	defer rows.Close()

	var out []*model.Finding
	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateFindingStatus moves a finding's status forward (active ->
// removal_pending -> removed). Admin reset (moving backward) is permitted at
// this layer; the orchestrator is responsible for only calling it forward.
func (s *Store) UpdateFindingStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE findings SET status = ?, updated_at = ? WHERE id = ?`,
		status, now().Format(sqliteTimeFormat), id)
	if err != nil {
		return fmt.Errorf("update finding status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrFindingNotFound
	}
	return nil
}

func scanFinding(row rowScanner) (*model.Finding, error) {
	var f model.Finding
	var brokerID sql.NullInt64
	var dataFound, discoveredAt, updatedAt string

	err := row.Scan(&f.ID, &f.PersonID, &brokerID, &f.Source, &f.FindingType, &dataFound,
		&f.RiskLevel, &f.URL, &f.ScreenshotPath, &f.Status, &discoveredAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrFindingNotFound
		}
		return nil, fmt.Errorf("scan finding: %w", err)
	}

	if brokerID.Valid {
		id := brokerID.Int64
		f.BrokerID = &id
	}
	f.DataFound = decodeMap(dataFound)
	f.DiscoveredAt = parseSQLiteTime(discoveredAt)
	f.UpdatedAt = parseSQLiteTime(updatedAt)
	return &f, nil
}
