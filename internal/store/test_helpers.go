package store

import (
	"context"
	"path/filepath"
	"testing"
)

// newTestStore opens a fresh SQLite-backed Store in a temp directory,
// closing it automatically when the test completes.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(context.Background(), filepath.Join(dir, "footprint.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
