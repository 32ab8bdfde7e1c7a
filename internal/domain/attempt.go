package domain

import (
	"strings"
	"time"
)

// ─── Attempts & Scoring ─────────────────────────────────────────────────────

// AnswerSubmission is one submitted answer within a lesson attempt.
// Correctness is always recomputed server-side; clients cannot assert it.
type AnswerSubmission struct {
	ExerciseID string `json:"exerciseId"`
	UserAnswer string `json:"userAnswer"`
}

// AttemptAnswer is a graded answer as persisted in attempt history.
type AttemptAnswer struct {
	ExerciseID string `json:"exerciseId"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Attempt is one graded pass through a lesson's exercises.
type Attempt struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	LessonID     string          `json:"lessonId"`
	StartedAt    time.Time       `json:"startedAt"`
	CompletedAt  time.Time       `json:"completedAt"`
	XPEarned     int             `json:"xpEarned"`
	CreditsSpent int             `json:"creditsSpent"`
	Answers      []AttemptAnswer `json:"exercises"`
}

// AnswerMatches reports whether a submitted answer matches the canonical
// one: case-insensitive, whitespace-trimmed string equality. No partial
// credit, no fuzzy matching.
func AnswerMatches(userAnswer, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(canonical))
}

// ScoreAttempt grades submissions against the lesson's exercises and
// returns the graded answers plus the correctness tally. Submissions
// referencing unknown exercises are graded incorrect rather than rejected.
// Resubmitting an exercise replaces the earlier answer: one graded answer
// per exercise, the last submission counting.
func ScoreAttempt(exercises []Exercise, submissions []AnswerSubmission) (answers []AttemptAnswer, correct int) {
	canonical := make(map[string]string, len(exercises))
	for _, ex := range exercises {
		canonical[ex.ID] = ex.Answer
	}

	index := make(map[string]int, len(submissions))
	answers = make([]AttemptAnswer, 0, len(submissions))
	for _, sub := range submissions {
		want, known := canonical[sub.ExerciseID]
		graded := AttemptAnswer{
			ExerciseID: sub.ExerciseID,
			UserAnswer: sub.UserAnswer,
			IsCorrect:  known && AnswerMatches(sub.UserAnswer, want),
		}
		if i, seen := index[sub.ExerciseID]; seen {
			answers[i] = graded
			continue
		}
		index[sub.ExerciseID] = len(answers)
		answers = append(answers, graded)
	}

	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return answers, correct
}
