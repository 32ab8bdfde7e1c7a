// Package domain contains the business types and rules of the wallet and
// progress engine. It imports no infrastructure.
package domain

import "time"

// ─── Credit Constants ───────────────────────────────────────────────────────
// These values are part of the observable client contract and must not be
// tuned per deployment.

const (
	StartingBalance  = 50 // granted when a wallet is first created
	BalanceCap       = 100
	LessonCost       = 5
	DailyRefill      = 20
	FirstLessonBonus = 5
)

// TransactionKind is the business reason for a ledger entry.
type TransactionKind string

const (
	TxRefill TransactionKind = "REFILL"
	TxSpent  TransactionKind = "SPENT"
	TxBonus  TransactionKind = "BONUS"
)

// Wallet holds a user's spendable credit balance.
// Invariant: 0 <= Balance <= Cap, and LastRefillDate never moves backwards.
type Wallet struct {
	UserID         string    `json:"userId"`
	Balance        int       `json:"balance"`
	Cap            int       `json:"cap"`
	LastRefillDate time.Time `json:"lastRefillDate"`
}

// LedgerEntry is a single row in the append-only credit ledger.
// Amounts are nominal: a refill clipped by the cap still records +20.
type LedgerEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      int             `json:"amount"` // negative for SPENT
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	LessonID    string          `json:"lessonId,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ClampBalance clamps a candidate balance into [0, cap].
func ClampBalance(balance, cap int) int {
	if balance < 0 {
		return 0
	}
	if balance > cap {
		return cap
	}
	return balance
}

// SpendResult is the outcome of a spend attempt.
type SpendResult struct {
	Success    bool   `json:"success"`
	NewBalance int    `json:"newBalance"`
	Message    string `json:"message,omitempty"`
}

// RefillResult is the outcome of a daily refill check.
type RefillResult struct {
	Applied    bool `json:"applied"`
	NewBalance int  `json:"newBalance"`
}
