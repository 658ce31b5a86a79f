package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/untoldecay/footprint/internal/model"
)

// InsertPipelineRun creates a running PipelineRun row.
func (s *Store) InsertPipelineRun(ctx context.Context, personID int64, startedAt time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pipeline_runs (person_id, started_at, status) VALUES (?, ?, ?)`,
		personID, startedAt.UTC().Format(sqliteTimeFormat), model.RunRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("insert pipeline run: %w", err)
	}
	return res.LastInsertId()
}

// PipelineRunTerminal carries the fields set only on terminal transition.
type PipelineRunTerminal struct {
	CompletedAt       time.Time
	Status            string
	BreachesFound     int
	DarkWebFindings   int
	AccountsFound     int
	RemovalsSubmitted int
	RiskScore         int
	Error             string
}

// UpdatePipelineRun fills the terminal columns of a PipelineRun. PipelineRun
// rows are append-only otherwise (spec §3.1).
func (s *Store) UpdatePipelineRun(ctx context.Context, id int64, t PipelineRunTerminal) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE pipeline_runs SET completed_at=?, status=?, breaches_found=?, dark_web_findings=?,
			accounts_found=?, removals_submitted=?, risk_score=?, error=? WHERE id=?`,
		t.CompletedAt.UTC().Format(sqliteTimeFormat), t.Status, t.BreachesFound, t.DarkWebFindings,
		t.AccountsFound, t.RemovalsSubmitted, t.RiskScore, t.Error, id,
	)
	if err != nil {
		return fmt.Errorf("update pipeline run: %w", err)
	}
	return nil
}

// ListPipelineRunsByPerson returns a person's pipeline runs, most recent first.
func (s *Store) ListPipelineRunsByPerson(ctx context.Context, personID int64) ([]*model.PipelineRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, person_id, started_at, completed_at, status, breaches_found, dark_web_findings,
			accounts_found, removals_submitted, risk_score, error
		FROM pipeline_runs WHERE person_id = ? ORDER BY started_at DESC`, personID)
	if err != nil {
		return nil, fmt.Errorf("list pipeline runs: %w", err)
	}
	defer rows.Close()

	var out []*model.PipelineRun
	for rows.Next() {
		var r model.PipelineRun
		var started string
		var completed sql.NullString
		if err := rows.Scan(&r.ID, &r.PersonID, &started, &completed, &r.Status, &r.BreachesFound,
			&r.DarkWebFindings, &r.AccountsFound, &r.RemovalsSubmitted, &r.RiskScore, &r.Error); err != nil {
			return nil, fmt.Errorf("scan pipeline run: %w", err)
		}
		r.StartedAt = parseSQLiteTime(started)
		r.CompletedAt = parseSQLiteTimePtr(completed)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// InsertScheduledRun creates a running ScheduledRun row.
func (s *Store) InsertScheduledRun(ctx context.Context, jobName string, startedAt time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO scheduled_runs (job_name, started_at, status) VALUES (?, ?, ?)`,
		jobName, startedAt.UTC().Format(sqliteTimeFormat), "running",
	)
	if err != nil {
		return 0, fmt.Errorf("insert scheduled run: %w", err)
	}
	return res.LastInsertId()
}

// ScheduledRunTerminal carries the fields set only on terminal transition.
type ScheduledRunTerminal struct {
	CompletedAt time.Time
	Status      string
	Details     map[string]any
	Error       string
}

// UpdateScheduledRun fills the terminal columns of a ScheduledRun.
func (s *Store) UpdateScheduledRun(ctx context.Context, id int64, t ScheduledRunTerminal) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE scheduled_runs SET completed_at=?, status=?, details=?, error=? WHERE id=?`,
		t.CompletedAt.UTC().Format(sqliteTimeFormat), t.Status, encodeMap(t.Details), t.Error, id,
	)
	if err != nil {
		return fmt.Errorf("update scheduled run: %w", err)
	}
	return nil
}

// LastRun returns the most recent ScheduledRun row for a job, or nil if the
// job has never run.
func (s *Store) LastRun(ctx context.Context, jobName string) (*model.ScheduledRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_name, started_at, completed_at, status, details, error
		FROM scheduled_runs WHERE job_name = ? ORDER BY started_at DESC, id DESC LIMIT 1`, jobName)
	r, err := scanScheduledRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// RunHistory returns the most recent scheduled runs across all jobs.
func (s *Store) RunHistory(ctx context.Context, limit int) ([]*model.ScheduledRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_name, started_at, completed_at, status, details, error
		FROM scheduled_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}
	defer rows.Close()

	var out []*model.ScheduledRun
	for rows.Next() {
		r, err := scanScheduledRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanScheduledRun(row rowScanner) (*model.ScheduledRun, error) {
	var r model.ScheduledRun
	var started string
	var completed sql.NullString
	var details string

	err := row.Scan(&r.ID, &r.JobName, &started, &completed, &r.Status, &details, &r.Error)
	if err != nil {
		return nil, err
	}
	r.StartedAt = parseSQLiteTime(started)
	r.CompletedAt = parseSQLiteTimePtr(completed)
	r.Details = decodeMap(details)
	return &r, nil
}
