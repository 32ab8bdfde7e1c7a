// Package credits implements the wallet policies: daily refill, lesson
// spend, and the first-lesson bonus. All balance mutations delegate to the
// store's atomic operations; this layer decides when they apply and keys
// every calendar-day comparison to the configured time zone.
package credits

import (
	"fmt"
	"time"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/observability"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

// Service applies the credit policies for one deployment.
type Service struct {
	db  *sqlite.DB
	loc *time.Location
	now func() time.Time
}

// NewService creates the credit service. loc fixes the day boundary used
// for refill eligibility and the bonus guard.
func NewService(db *sqlite.DB, loc *time.Location) *Service {
	return &Service{db: db, loc: loc, now: time.Now}
}

// SetClock replaces the wall clock. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) today() string {
	return domain.DayString(s.now(), s.loc)
}

// Snapshot returns the user's wallet, creating it on first access.
func (s *Service) Snapshot(userID string) (domain.Wallet, error) {
	if userID == "" {
		return domain.Wallet{}, domain.ErrUserRequired
	}
	return s.db.GetOrCreateWallet(userID, s.today())
}

// ApplyDailyRefill grants the daily refill when due. Safe to call on every
// page load: within one calendar day only the first call changes anything.
func (s *Service) ApplyDailyRefill(userID string) (domain.RefillResult, error) {
	if userID == "" {
		return domain.RefillResult{}, domain.ErrUserRequired
	}
	res, err := s.db.ApplyRefill(userID, domain.DailyRefill, s.today(), s.now())
	if err != nil {
		return domain.RefillResult{}, fmt.Errorf("daily refill for %s: %w", userID, err)
	}
	if res.Applied {
		observability.RefillsApplied.Inc()
	}
	return res, nil
}

// SpendForLesson debits the lesson cost. The lesson must exist; the debit
// is all-or-nothing and loses no updates under concurrent calls.
func (s *Service) SpendForLesson(userID, lessonID string) (domain.SpendResult, error) {
	if userID == "" {
		return domain.SpendResult{}, domain.ErrUserRequired
	}
	if _, err := s.db.GetLesson(lessonID); err != nil {
		return domain.SpendResult{}, err
	}

	res, err := s.db.Spend(userID, lessonID, domain.LessonCost, s.today(), s.now())
	if err != nil {
		return domain.SpendResult{}, fmt.Errorf("spend for lesson %s: %w", lessonID, err)
	}
	if res.Success {
		observability.CreditsSpent.Add(float64(domain.LessonCost))
	} else {
		observability.SpendsRejected.Inc()
	}
	return res, nil
}

// AwardFirstLessonBonus grants the bonus at most once per calendar day.
func (s *Service) AwardFirstLessonBonus(userID string) (applied bool, newBalance int, err error) {
	if userID == "" {
		return false, 0, domain.ErrUserRequired
	}
	applied, newBalance, err = s.db.AwardBonus(userID, domain.FirstLessonBonus, s.today(), s.now())
	if err != nil {
		return false, 0, fmt.Errorf("first lesson bonus for %s: %w", userID, err)
	}
	if applied {
		observability.BonusesAwarded.Inc()
	}
	return applied, newBalance, nil
}

// Ledger returns the user's recent credit transactions, newest first.
func (s *Service) Ledger(userID string, limit int) ([]domain.LedgerEntry, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	if limit <= 0 {
		limit = 20
	}
	return s.db.Ledger(userID, limit)
}
