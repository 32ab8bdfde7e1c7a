package sqlite

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesIdempotently(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()

	// Re-opening the same directory must re-run migrations harmlessly.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	db.Close()
}

func TestOpen_CreatesMissingDir(t *testing.T) {
	// A fresh machine has no data directory yet; Open must create the
	// full path before touching the database file.
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open nested dir: %v", err)
	}
	defer db.Close()

	if _, err := db.GetOrCreateWallet("alice", "2024-06-15"); err != nil {
		t.Fatalf("wallet on fresh dir: %v", err)
	}
}
