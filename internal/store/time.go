package store

import (
	"database/sql"
	"time"
)

// sqliteTimeFormat matches SQLite's own datetime('now') output so stored
// and application-written timestamps sort and compare identically.
const sqliteTimeFormat = "2006-01-02 15:04:05"

func parseSQLiteTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(sqliteTimeFormat, raw)
	if err != nil {
		// fall back to RFC3339 in case the value was written by application code
		if t2, err2 := time.Parse(time.RFC3339, raw); err2 == nil {
			return t2
		}
		return time.Time{}
	}
	return t
}

func parseSQLiteTimePtr(raw sql.NullString) *time.Time {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	t := parseSQLiteTime(raw.String)
	return &t
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeFormat)
}

func now() time.Time {
	return time.Now().UTC()
}
