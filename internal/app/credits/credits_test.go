package credits

import (
	"errors"
	"testing"
	"time"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.UpsertLesson(domain.Lesson{ID: "lesson_1", UnitID: "u1", Title: "Greetings", XPReward: 20}); err != nil {
		t.Fatal(err)
	}

	svc := NewService(db, time.UTC)
	svc.SetClock(func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) })
	return svc, db
}

func TestSnapshot_FreshUser(t *testing.T) {
	svc, _ := newTestService(t)

	w, err := svc.Snapshot("alice")
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if w.Balance != 50 || w.Cap != 100 {
		t.Errorf("fresh wallet = {%d %d}, want {50 100}", w.Balance, w.Cap)
	}
}

func TestSnapshot_RequiresUser(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Snapshot(""); !errors.Is(err, domain.ErrUserRequired) {
		t.Errorf("error = %v, want ErrUserRequired", err)
	}
}

func TestApplyDailyRefill_OnlyAcrossDayBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Snapshot("alice") // wallet created today

	res, err := svc.ApplyDailyRefill("alice")
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Error("refill must not apply on the wallet's creation day")
	}

	// Advance the clock past midnight.
	svc.SetClock(func() time.Time { return time.Date(2024, 6, 16, 0, 1, 0, 0, time.UTC) })
	res, err = svc.ApplyDailyRefill("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Applied {
		t.Fatal("refill should apply on the next calendar day")
	}
	if res.NewBalance != 70 {
		t.Errorf("newBalance = %d, want 70", res.NewBalance)
	}

	// Second check the same day is a no-op.
	res, err = svc.ApplyDailyRefill("alice")
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied || res.NewBalance != 70 {
		t.Errorf("repeat refill = %+v, want no-op at 70", res)
	}
}

func TestSpendForLesson(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.SpendForLesson("alice", "lesson_1")
	if err != nil {
		t.Fatalf("SpendForLesson() error: %v", err)
	}
	if !res.Success || res.NewBalance != 45 {
		t.Errorf("result = %+v, want success at 45", res)
	}
}

func TestSpendForLesson_UnknownLesson(t *testing.T) {
	svc, db := newTestService(t)

	if _, err := svc.SpendForLesson("alice", "ghost"); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("error = %v, want ErrLessonNotFound", err)
	}

	// The failed lookup must not have touched the wallet.
	w, _ := db.GetOrCreateWallet("alice", "2024-06-15")
	if w.Balance != 50 {
		t.Errorf("balance = %d, want untouched 50", w.Balance)
	}
}

func TestAwardFirstLessonBonus_GuardedPerDay(t *testing.T) {
	svc, _ := newTestService(t)

	applied, balance, err := svc.AwardFirstLessonBonus("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !applied || balance != 55 {
		t.Errorf("first call = (%v, %d), want (true, 55)", applied, balance)
	}

	applied, balance, err = svc.AwardFirstLessonBonus("alice")
	if err != nil {
		t.Fatal(err)
	}
	if applied || balance != 55 {
		t.Errorf("second call = (%v, %d), want (false, 55)", applied, balance)
	}
}

func TestLedger_ReflectsOperations(t *testing.T) {
	svc, _ := newTestService(t)
	svc.SpendForLesson("alice", "lesson_1")
	svc.AwardFirstLessonBonus("alice")

	entries, err := svc.Ledger("alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	kinds := map[domain.TransactionKind]bool{}
	for _, e := range entries {
		kinds[e.Kind] = true
	}
	if !kinds[domain.TxSpent] || !kinds[domain.TxBonus] {
		t.Errorf("ledger kinds = %v, want SPENT and BONUS", kinds)
	}
}
