// Package store is the durable persistence layer for the protection engine:
// persons, brokers, findings, removals, breaches, and the append-only
// pipeline/scheduled run records. All data lives in a single local SQLite
// file opened with WAL journaling and foreign-key enforcement (spec §4.1).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Sentinel errors for invariant violations (spec §7 category 5).
var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrBrokerNotFound  = errors.New("broker not found")
	ErrFindingNotFound = errors.New("finding not found")
	ErrRemovalNotFound = errors.New("removal not found")
)

// Store wraps a SQLite database holding every entity the engine owns.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the database file's parent directory if needed, opens the
// SQLite connection, enables WAL journaling and foreign-key enforcement, and
// applies the schema. Mirrors the teacher's single `*sql.DB` + pragma-on-open
// pattern; there is no separate migrations table because schema.go is
// purely additive (CREATE ... IF NOT EXISTS), matching the teacher's own
// idempotent schema application.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UnderlyingDB exposes the raw *sql.DB for health checks.
func (s *Store) UnderlyingDB() *sql.DB {
	return s.db
}

// RunInTransaction runs fn inside a BEGIN IMMEDIATE transaction, committing
// on success and rolling back on error or panic. SQLite serialises writers;
// BEGIN IMMEDIATE takes the write lock up front rather than on first write,
// the same discipline the teacher's Storage.RunInTransaction uses to avoid
// SQLITE_BUSY surprises under WAL.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
