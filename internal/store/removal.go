package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/untoldecay/footprint/internal/model"
)

const removalSelect = `
	SELECT id, person_id, broker_id, method, finding_id, status, reference_id,
		submitted_at, confirmed_at, last_checked_at, attempts, next_check_at, notes
	FROM removals`

// InsertRemoval records a removal request. next_check_at and submitted_at
// are nil unless the handler's outcome calls for them (spec §4.5 "Record").
func (s *Store) InsertRemoval(ctx context.Context, r *model.Removal) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO removals (person_id, broker_id, method, finding_id, status, reference_id,
			submitted_at, confirmed_at, last_checked_at, attempts, next_check_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PersonID, r.BrokerID, r.Method, r.FindingID, r.Status, r.ReferenceID,
		formatTimePtr(r.SubmittedAt), formatTimePtr(r.ConfirmedAt), formatTimePtr(r.LastCheckedAt),
		r.Attempts, formatTimePtr(r.NextCheckAt), r.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert removal: %w", err)
	}
	return res.LastInsertId()
}

// GetRemoval fetches a removal by id.
func (s *Store) GetRemoval(ctx context.Context, id int64) (*model.Removal, error) {
	row := s.db.QueryRowContext(ctx, removalSelect+` WHERE id = ?`, id)
	return scanRemoval(row)
}

// ListRemovalsByPerson returns every removal for a person.
func (s *Store) ListRemovalsByPerson(ctx context.Context, personID int64) ([]*model.Removal, error) {
	rows, err := s.db.QueryContext(ctx, removalSelect+` WHERE person_id = ? ORDER BY id`, personID)
	if err != nil {
		return nil, fmt.Errorf("list removals: %w", err)
	}
	defer rows.Close()

	var out []*model.Removal
	for rows.Next() {
		r, err := scanRemoval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemovalUpdate is a partial update over a removal row. For Status, Attempts
// and Notes a nil pointer leaves the column unchanged. A time column changes
// only when its Set* flag is true; a nil pointer then clears it to NULL.
type RemovalUpdate struct {
	Status        *string
	SubmittedAt   *time.Time
	SetSubmittedAt bool
	ConfirmedAt   *time.Time
	SetConfirmedAt bool
	LastCheckedAt *time.Time
	SetLastCheckedAt bool
	Attempts      *int
	NextCheckAt   *time.Time
	SetNextCheckAt bool
	Notes         *string
}

// UpdateRemoval applies a partial update, matching db.py's generic
// kwargs-driven SET clause builder.
func (s *Store) UpdateRemoval(ctx context.Context, id int64, u RemovalUpdate) error {
	existing, err := s.GetRemoval(ctx, id)
	if err != nil {
		return err
	}

	status := existing.Status
	if u.Status != nil {
		status = *u.Status
	}
	attempts := existing.Attempts
	if u.Attempts != nil {
		attempts = *u.Attempts
	}
	notes := existing.Notes
	if u.Notes != nil {
		notes = *u.Notes
	}
	submittedAt := existing.SubmittedAt
	if u.SetSubmittedAt {
		submittedAt = u.SubmittedAt
	}
	confirmedAt := existing.ConfirmedAt
	if u.SetConfirmedAt {
		confirmedAt = u.ConfirmedAt
	}
	lastCheckedAt := existing.LastCheckedAt
	if u.SetLastCheckedAt {
		lastCheckedAt = u.LastCheckedAt
	}
	nextCheckAt := existing.NextCheckAt
	if u.SetNextCheckAt {
		nextCheckAt = u.NextCheckAt
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE removals SET status=?, submitted_at=?, confirmed_at=?, last_checked_at=?,
			attempts=?, next_check_at=?, notes=? WHERE id=?`,
		status, formatTimePtr(submittedAt), formatTimePtr(confirmedAt), formatTimePtr(lastCheckedAt),
		attempts, formatTimePtr(nextCheckAt), notes, id,
	)
	if err != nil {
		return fmt.Errorf("update removal: %w", err)
	}
	return nil
}

// PendingVerifications returns removals due for a verification re-scan:
// status IN (submitted, still_found) AND next_check_at <= now, ordered by
// next_check_at ascending (spec §4.1/§4.5). still_found is included because
// a removal that was still found on a prior check is "conceptually the same
// bucket" as submitted (spec §4.5 state table) and must keep coming back
// through verification until it is confirmed or exhausts its attempt cap.
func (s *Store) PendingVerifications(ctx context.Context) ([]*model.Removal, error) {
	nowStr := now().Format(sqliteTimeFormat)
	rows, err := s.db.QueryContext(ctx, removalSelect+`
		WHERE status IN (?, ?) AND next_check_at IS NOT NULL AND next_check_at <= ?
		ORDER BY next_check_at ASC`, model.RemovalSubmitted, model.RemovalStillFound, nowStr)
	if err != nil {
		return nil, fmt.Errorf("pending verifications: %w", err)
	}
	defer rows.Close()

	var out []*model.Removal
	for rows.Next() {
		r, err := scanRemoval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRemoval(row rowScanner) (*model.Removal, error) {
	var r model.Removal
	var findingID sql.NullInt64
	var submittedAt, confirmedAt, lastCheckedAt, nextCheckAt sql.NullString

	err := row.Scan(&r.ID, &r.PersonID, &r.BrokerID, &r.Method, &findingID, &r.Status,
		&r.ReferenceID, &submittedAt, &confirmedAt, &lastCheckedAt, &r.Attempts, &nextCheckAt, &r.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRemovalNotFound
		}
		return nil, fmt.Errorf("scan removal: %w", err)
	}

	if findingID.Valid {
		id := findingID.Int64
		r.FindingID = &id
	}
	r.SubmittedAt = parseSQLiteTimePtr(submittedAt)
	r.ConfirmedAt = parseSQLiteTimePtr(confirmedAt)
	r.LastCheckedAt = parseSQLiteTimePtr(lastCheckedAt)
	r.NextCheckAt = parseSQLiteTimePtr(nextCheckAt)
	return &r, nil
}
