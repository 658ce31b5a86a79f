package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/untoldecay/footprint/internal/model"
)

// InsertPerson creates a person row and returns its id.
func (s *Store) InsertPerson(ctx context.Context, p *model.Person) (int64, error) {
	relation := p.Relation
	if relation == "" {
		relation = "self"
	}
	now := time.Now().UTC().Format(sqliteTimeFormat)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO persons (name, relation, emails, phones, addresses, usernames, date_of_birth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, relation,
		encodeList(p.Emails), encodeList(p.Phones), encodeList(p.Addresses), encodeList(p.Usernames),
		p.DOB, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert person: %w", err)
	}
	return res.LastInsertId()
}

// GetPerson fetches a person by id.
func (s *Store) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, relation, emails, phones, addresses, usernames, date_of_birth, created_at, updated_at
		FROM persons WHERE id = ?`, id)
	return scanPerson(row)
}

// ListPersons returns every person, ordered by id.
func (s *Store) ListPersons(ctx context.Context) ([]*model.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, relation, emails, phones, addresses, usernames, date_of_birth, created_at, updated_at
		FROM persons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var out []*model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PersonUpdate is a partial update; nil fields are left unchanged.
type PersonUpdate struct {
	Name      *string
	Relation  *string
	Emails    []string
	Phones    []string
	Addresses []string
	Usernames []string
	DOB       *string
}

// UpdatePerson applies a partial update and bumps updated_at.
func (s *Store) UpdatePerson(ctx context.Context, id int64, u PersonUpdate) error {
	existing, err := s.GetPerson(ctx, id)
	if err != nil {
		return err
	}

	name := existing.Name
	if u.Name != nil {
		name = *u.Name
	}
	relation := existing.Relation
	if u.Relation != nil {
		relation = *u.Relation
	}
	emails := existing.Emails
	if u.Emails != nil {
		emails = u.Emails
	}
	phones := existing.Phones
	if u.Phones != nil {
		phones = u.Phones
	}
	addresses := existing.Addresses
	if u.Addresses != nil {
		addresses = u.Addresses
	}
	usernames := existing.Usernames
	if u.Usernames != nil {
		usernames = u.Usernames
	}
	dob := existing.DOB
	if u.DOB != nil {
		dob = u.DOB
	}

	now := time.Now().UTC().Format(sqliteTimeFormat)
	_, err = s.db.ExecContext(ctx, `
		UPDATE persons SET name=?, relation=?, emails=?, phones=?, addresses=?, usernames=?, date_of_birth=?, updated_at=?
		WHERE id=?`,
		name, relation, encodeList(emails), encodeList(phones), encodeList(addresses), encodeList(usernames), dob, now, id,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*model.Person, error) {
	var p model.Person
	var emails, phones, addresses, usernames string
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &p.Relation, &emails, &phones, &addresses, &usernames, &p.DOB, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}

	p.Emails = decodeList(emails)
	p.Phones = decodeList(phones)
	p.Addresses = decodeList(addresses)
	p.Usernames = decodeList(usernames)
	p.CreatedAt = parseSQLiteTime(createdAt)
	p.UpdatedAt = parseSQLiteTime(updatedAt)
	return &p, nil
}
