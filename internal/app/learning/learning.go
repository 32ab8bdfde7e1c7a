// Package learning turns submitted lesson attempts into scored, persisted
// history and folds them into the user's XP, streak, and completed-lesson
// set. Correctness is always recomputed here from the lesson's canonical
// answers — the client's opinion of its own answers is ignored.
package learning

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/observability"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

// Service is the progress tracker and attempt scorer.
type Service struct {
	db  *sqlite.DB
	loc *time.Location
	now func() time.Time
}

// NewService creates the learning service. loc fixes the calendar day used
// for streak transitions.
func NewService(db *sqlite.DB, loc *time.Location) *Service {
	return &Service{db: db, loc: loc, now: time.Now}
}

// SetClock replaces the wall clock. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CompletionResult is returned to the client after an attempt.
type CompletionResult struct {
	AttemptID string `json:"attemptId"`
	XPEarned  int    `json:"xpEarned"`
	NewStreak int    `json:"newStreak"`
}

// CompleteAttempt scores the submissions against the lesson, persists the
// attempt with its graded answers, and applies the XP and streak update —
// all in one storage transaction. Unknown lessons return
// domain.ErrLessonNotFound before anything is written.
func (s *Service) CompleteAttempt(userID, lessonID string, submissions []domain.AnswerSubmission) (CompletionResult, error) {
	if userID == "" {
		return CompletionResult{}, domain.ErrUserRequired
	}

	lesson, err := s.db.GetLesson(lessonID)
	if err != nil {
		return CompletionResult{}, err
	}

	answers, correct := domain.ScoreAttempt(lesson.Exercises, submissions)
	now := s.now()

	att := domain.Attempt{
		ID:           uuid.NewString(),
		UserID:       userID,
		LessonID:     lessonID,
		StartedAt:    now,
		CompletedAt:  now,
		XPEarned:     domain.XPForAttempt(correct),
		CreditsSpent: domain.LessonCost,
		Answers:      answers,
	}

	update, err := s.db.RecordAttempt(att, now, s.loc)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("record attempt for %s: %w", lessonID, err)
	}

	observability.AttemptsCompleted.Inc()
	observability.XPAwarded.Add(float64(update.XPGained))

	return CompletionResult{
		AttemptID: att.ID,
		XPEarned:  update.XPGained,
		NewStreak: update.NewStreak,
	}, nil
}

// Progress returns the user's progress snapshot, creating it on first access.
func (s *Service) Progress(userID string) (domain.UserProgress, error) {
	if userID == "" {
		return domain.UserProgress{}, domain.ErrUserRequired
	}
	return s.db.GetOrCreateProgress(userID, domain.DayString(s.now(), s.loc))
}

// RecentAttempts returns the user's latest attempts with accuracy.
func (s *Service) RecentAttempts(userID string) ([]sqlite.AttemptSummary, error) {
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	return s.db.RecentAttempts(userID, 5)
}

// AttemptDetail returns one attempt with graded answers, the lesson it was
// taken against, and the mistake count for the results screen.
type AttemptDetail struct {
	Attempt       domain.Attempt `json:"attempt"`
	Lesson        domain.Lesson  `json:"lesson"`
	MistakesCount int            `json:"mistakesCount"`
}

// Attempt returns the detail view of one of the user's attempts.
func (s *Service) Attempt(attemptID, userID string) (AttemptDetail, error) {
	if userID == "" {
		return AttemptDetail{}, domain.ErrUserRequired
	}
	att, err := s.db.GetAttempt(attemptID, userID)
	if err != nil {
		return AttemptDetail{}, err
	}

	mistakes := 0
	for _, a := range att.Answers {
		if !a.IsCorrect {
			mistakes++
		}
	}

	// The lesson may have been deleted since; the attempt still renders.
	lesson, err := s.db.GetLesson(att.LessonID)
	if err != nil && !errors.Is(err, domain.ErrLessonNotFound) {
		return AttemptDetail{}, err
	}

	return AttemptDetail{Attempt: att, Lesson: lesson, MistakesCount: mistakes}, nil
}
