package domain

import "time"

// ─── Progress Constants ─────────────────────────────────────────────────────

const (
	XPPerCorrect     = 10 // per correct exercise
	XPPerCompletion  = 20 // flat bonus for finishing a lesson
	DefaultDailyGoal = 10 // informational daily XP goal
)

// UserProgress is the per-user gamification state.
// XP and CompletedLessons only ever grow.
type UserProgress struct {
	UserID           string    `json:"userId"`
	XP               int       `json:"xp"`
	Streak           int       `json:"streak"`
	LastActiveDate   time.Time `json:"lastActiveDate"`
	DailyXPGoal      int       `json:"dailyXpGoal"`
	CompletedLessons []string  `json:"completedLessons"`
}

// XPForAttempt computes the XP earned by one completed attempt.
func XPForAttempt(correctCount int) int {
	if correctCount < 0 {
		correctCount = 0
	}
	return correctCount*XPPerCorrect + XPPerCompletion
}

// NextStreak applies the streak transition for a completion happening
// daysSinceActive whole days after the last active day.
//
//	0  — same day: unchanged, except a zero streak becomes 1
//	1  — consecutive day: increment
//	2+ — broken: reset to 1
//
// Negative gaps (clock skew) are treated as same-day.
func NextStreak(current, daysSinceActive int) int {
	switch {
	case daysSinceActive <= 0:
		if current == 0 {
			return 1
		}
		return current
	case daysSinceActive == 1:
		return current + 1
	default:
		return 1
	}
}

// ProgressUpdate is what the tracker reports back after an attempt,
// so the caller can render celebratory feedback.
type ProgressUpdate struct {
	XPGained  int `json:"xpGained"`
	NewStreak int `json:"newStreak"`
}
