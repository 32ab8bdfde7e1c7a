package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
)

// ─── Wallet Operations ──────────────────────────────────────────────────────

// GetOrCreateWallet returns the user's wallet, creating it with the
// starting allotment on first access. today is the current calendar day
// (YYYY-MM-DD) in the service's time zone; a wallet created today is not
// refill-due.
func (db *DB) GetOrCreateWallet(userID, today string) (domain.Wallet, error) {
	if _, err := db.db.Exec(`
		INSERT OR IGNORE INTO wallets (user_id, balance, cap, last_refill_date)
		VALUES (?, ?, ?, ?)
	`, userID, domain.StartingBalance, domain.BalanceCap, today); err != nil {
		return domain.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}
	return db.getWallet(userID)
}

func (db *DB) getWallet(userID string) (domain.Wallet, error) {
	var w domain.Wallet
	var refillDay string
	err := db.db.QueryRow(`
		SELECT user_id, balance, cap, last_refill_date FROM wallets WHERE user_id = ?
	`, userID).Scan(&w.UserID, &w.Balance, &w.Cap, &refillDay)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("get wallet: %w", err)
	}
	w.LastRefillDate, _ = time.Parse(time.DateOnly, refillDay)
	return w, nil
}

// ApplyRefill grants the daily refill if the wallet's last refill day
// precedes today. The guard is a conditional UPDATE, so concurrent calls
// within one day apply the refill at most once. Missed days are not
// back-filled: one refill regardless of absence length.
func (db *DB) ApplyRefill(userID string, amount int, today string, now time.Time) (domain.RefillResult, error) {
	if _, err := db.db.Exec(`
		INSERT OR IGNORE INTO wallets (user_id, balance, cap, last_refill_date)
		VALUES (?, ?, ?, ?)
	`, userID, domain.StartingBalance, domain.BalanceCap, today); err != nil {
		return domain.RefillResult{}, fmt.Errorf("create wallet: %w", err)
	}

	tx, err := db.db.Begin()
	if err != nil {
		return domain.RefillResult{}, fmt.Errorf("begin refill: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE wallets
		SET balance = MIN(balance + ?, cap), last_refill_date = ?
		WHERE user_id = ? AND last_refill_date < ?
	`, amount, today, userID, today)
	if err != nil {
		return domain.RefillResult{}, fmt.Errorf("apply refill: %w", err)
	}
	applied, err := res.RowsAffected()
	if err != nil {
		return domain.RefillResult{}, err
	}

	if applied > 0 {
		// The ledger records the nominal amount even when the cap clipped
		// the effective change.
		if err := insertLedgerTx(tx, domain.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amount,
			Kind:        domain.TxRefill,
			Description: "Daily credit refill",
			Timestamp:   now,
		}, today); err != nil {
			return domain.RefillResult{}, err
		}
	}

	balance, err := balanceTx(tx, userID)
	if err != nil {
		return domain.RefillResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.RefillResult{}, fmt.Errorf("commit refill: %w", err)
	}
	return domain.RefillResult{Applied: applied > 0, NewBalance: balance}, nil
}

// Spend debits cost for a lesson attempt. The balance check and the debit
// are one conditional UPDATE: of N concurrent spends racing a balance of
// exactly cost, exactly one succeeds. No partial debit ever occurs.
func (db *DB) Spend(userID, lessonID string, cost int, today string, now time.Time) (domain.SpendResult, error) {
	if _, err := db.db.Exec(`
		INSERT OR IGNORE INTO wallets (user_id, balance, cap, last_refill_date)
		VALUES (?, ?, ?, ?)
	`, userID, domain.StartingBalance, domain.BalanceCap, today); err != nil {
		return domain.SpendResult{}, fmt.Errorf("create wallet: %w", err)
	}

	tx, err := db.db.Begin()
	if err != nil {
		return domain.SpendResult{}, fmt.Errorf("begin spend: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE wallets SET balance = balance - ?
		WHERE user_id = ? AND balance >= ?
	`, cost, userID, cost)
	if err != nil {
		return domain.SpendResult{}, fmt.Errorf("debit wallet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.SpendResult{}, err
	}

	if n == 0 {
		balance, err := balanceTx(tx, userID)
		if err != nil {
			return domain.SpendResult{}, err
		}
		return domain.SpendResult{Success: false, NewBalance: balance, Message: "Insufficient credits"}, nil
	}

	if err := insertLedgerTx(tx, domain.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      -cost,
		Kind:        domain.TxSpent,
		Description: "Lesson attempt: " + lessonID,
		LessonID:    lessonID,
		Timestamp:   now,
	}, today); err != nil {
		return domain.SpendResult{}, err
	}

	balance, err := balanceTx(tx, userID)
	if err != nil {
		return domain.SpendResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.SpendResult{}, fmt.Errorf("commit spend: %w", err)
	}
	return domain.SpendResult{Success: true, NewBalance: balance}, nil
}

// AwardBonus grants the first-lesson bonus at most once per calendar day,
// keyed on an existing BONUS ledger entry for (user, today).
func (db *DB) AwardBonus(userID string, amount int, today string, now time.Time) (applied bool, newBalance int, err error) {
	if _, err := db.db.Exec(`
		INSERT OR IGNORE INTO wallets (user_id, balance, cap, last_refill_date)
		VALUES (?, ?, ?, ?)
	`, userID, domain.StartingBalance, domain.BalanceCap, today); err != nil {
		return false, 0, fmt.Errorf("create wallet: %w", err)
	}

	tx, err := db.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("begin bonus: %w", err)
	}
	defer tx.Rollback()

	var claimed int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM credit_ledger
		WHERE user_id = ? AND kind = ? AND day = ?
	`, userID, domain.TxBonus, today).Scan(&claimed)
	if err != nil {
		return false, 0, fmt.Errorf("check bonus: %w", err)
	}

	if claimed == 0 {
		if _, err := tx.Exec(`
			UPDATE wallets SET balance = MIN(balance + ?, cap) WHERE user_id = ?
		`, amount, userID); err != nil {
			return false, 0, fmt.Errorf("apply bonus: %w", err)
		}
		if err := insertLedgerTx(tx, domain.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amount,
			Kind:        domain.TxBonus,
			Description: "First lesson of the day bonus",
			Timestamp:   now,
		}, today); err != nil {
			return false, 0, err
		}
		applied = true
	}

	newBalance, err = balanceTx(tx, userID)
	if err != nil {
		return false, 0, err
	}
	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit bonus: %w", err)
	}
	return applied, newBalance, nil
}

func balanceTx(tx *sql.Tx, userID string) (int, error) {
	var balance int
	if err := tx.QueryRow(`SELECT balance FROM wallets WHERE user_id = ?`, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// ─── Ledger Operations ──────────────────────────────────────────────────────

func insertLedgerTx(tx *sql.Tx, e domain.LedgerEntry, day string) error {
	var lessonID any
	if e.LessonID != "" {
		lessonID = e.LessonID
	}
	_, err := tx.Exec(`
		INSERT INTO credit_ledger (id, user_id, amount, kind, description, lesson_id, day, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Amount, e.Kind, e.Description, lessonID, day, e.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	return nil
}

// Ledger returns the user's most recent ledger entries, newest first.
func (db *DB) Ledger(userID string, limit int) ([]domain.LedgerEntry, error) {
	rows, err := db.db.Query(`
		SELECT id, user_id, amount, kind, description, lesson_id, timestamp
		FROM credit_ledger WHERE user_id = ?
		ORDER BY timestamp DESC, id LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var lessonID sql.NullString
		var ts string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Kind, &e.Description, &lessonID, &ts); err != nil {
			return nil, err
		}
		e.LessonID = lessonID.String
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LedgerSum returns the sum of nominal ledger amounts for a user.
// Equals balance − starting allotment plus any amounts the cap clipped.
func (db *DB) LedgerSum(userID string) (int, error) {
	var sum int
	err := db.db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM credit_ledger WHERE user_id = ?
	`, userID).Scan(&sum)
	return sum, err
}

// ─── Account Erasure ────────────────────────────────────────────────────────

// EraseUser removes every row belonging to a user: answers, attempts,
// ledger, wallet, progress, completed lessons. The only path that deletes
// ledger rows.
func (db *DB) EraseUser(userID string) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("begin erase: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM attempt_answers WHERE attempt_id IN (SELECT id FROM attempts WHERE user_id = ?)`,
		`DELETE FROM attempts WHERE user_id = ?`,
		`DELETE FROM credit_ledger WHERE user_id = ?`,
		`DELETE FROM completed_lessons WHERE user_id = ?`,
		`DELETE FROM wallets WHERE user_id = ?`,
		`DELETE FROM user_progress WHERE user_id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return fmt.Errorf("erase user: %w", err)
		}
	}
	return tx.Commit()
}
