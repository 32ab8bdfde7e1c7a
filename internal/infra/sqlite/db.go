// Package sqlite persists all durable state: wallets, the credit ledger,
// user progress, attempt history, and course content.
//
// Every mutation runs in a single IMMEDIATE transaction, and every
// check-then-act sequence is a conditional UPDATE, so two requests racing
// on the same user's counters cannot both pass the guard. Cross-user
// operations contend only on the SQLite write lock, bounded by the busy
// timeout.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and exposes typed operations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the database under dir and applies migrations.
// The directory is created if it does not exist.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, "lingua.db")
	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
	)

	raw, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db := &DB{db: raw}
	if err := db.migrate(); err != nil {
		raw.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close releases the database handle.
func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Per-user credit balance. Dates are calendar days (YYYY-MM-DD) in
		// the service's configured time zone; lexicographic order is
		// chronological order, which the refill guard relies on.
		`CREATE TABLE IF NOT EXISTS wallets (
			user_id          TEXT PRIMARY KEY,
			balance          INTEGER NOT NULL,
			cap              INTEGER NOT NULL,
			last_refill_date TEXT NOT NULL,
			CHECK (balance >= 0 AND balance <= cap)
		)`,

		// Append-only transaction log. Rows are never updated; the only
		// deletion path is full account erasure.
		`CREATE TABLE IF NOT EXISTS credit_ledger (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			amount      INTEGER NOT NULL,
			kind        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			lesson_id   TEXT,
			day         TEXT NOT NULL,
			timestamp   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user ON credit_ledger(user_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_kind_day ON credit_ledger(user_id, kind, day)`,

		// Per-user gamification state
		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id          TEXT PRIMARY KEY,
			xp               INTEGER NOT NULL DEFAULT 0,
			streak           INTEGER NOT NULL DEFAULT 0,
			last_active_date TEXT NOT NULL,
			daily_xp_goal    INTEGER NOT NULL DEFAULT 10
		)`,

		// Completed-lesson set, deduplicated by primary key
		`CREATE TABLE IF NOT EXISTS completed_lessons (
			user_id      TEXT NOT NULL,
			lesson_id    TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			PRIMARY KEY (user_id, lesson_id)
		)`,

		// Content hierarchy
		`CREATE TABLE IF NOT EXISTS courses (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			language    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			id          TEXT PRIMARY KEY,
			course_id   TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			ord         INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_units_course ON units(course_id, ord)`,
		`CREATE TABLE IF NOT EXISTS lessons (
			id          TEXT PRIMARY KEY,
			unit_id     TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			ord         INTEGER NOT NULL DEFAULT 0,
			xp_reward   INTEGER NOT NULL DEFAULT 20,
			type        TEXT NOT NULL DEFAULT 'lesson'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_unit ON lessons(unit_id, ord)`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id           TEXT PRIMARY KEY,
			lesson_id    TEXT NOT NULL,
			type         TEXT NOT NULL,
			prompt       TEXT NOT NULL DEFAULT '',
			question     TEXT NOT NULL DEFAULT '',
			options_json TEXT NOT NULL DEFAULT '[]',
			answer       TEXT NOT NULL,
			explanation  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercises_lesson ON exercises(lesson_id)`,

		// Attempt history
		`CREATE TABLE IF NOT EXISTS attempts (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			lesson_id     TEXT NOT NULL,
			started_at    TEXT NOT NULL,
			completed_at  TEXT NOT NULL,
			xp_earned     INTEGER NOT NULL DEFAULT 0,
			credits_spent INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, completed_at)`,
		`CREATE TABLE IF NOT EXISTS attempt_answers (
			attempt_id  TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			user_answer TEXT NOT NULL DEFAULT '',
			is_correct  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (attempt_id, exercise_id)
		)`,
	}
}
