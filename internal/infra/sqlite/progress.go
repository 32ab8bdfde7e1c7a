package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
)

// ─── Progress Operations ────────────────────────────────────────────────────

// GetOrCreateProgress returns the user's progress, creating the zeroed row
// on first access. today anchors last_active_date for fresh rows.
func (db *DB) GetOrCreateProgress(userID, today string) (domain.UserProgress, error) {
	if _, err := db.db.Exec(`
		INSERT OR IGNORE INTO user_progress (user_id, xp, streak, last_active_date, daily_xp_goal)
		VALUES (?, 0, 0, ?, ?)
	`, userID, today, domain.DefaultDailyGoal); err != nil {
		return domain.UserProgress{}, fmt.Errorf("create progress: %w", err)
	}

	var p domain.UserProgress
	var activeDay string
	err := db.db.QueryRow(`
		SELECT user_id, xp, streak, last_active_date, daily_xp_goal
		FROM user_progress WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.XP, &p.Streak, &activeDay, &p.DailyXPGoal)
	if err != nil {
		return domain.UserProgress{}, fmt.Errorf("get progress: %w", err)
	}
	p.LastActiveDate, _ = time.Parse(time.DateOnly, activeDay)

	p.CompletedLessons, err = db.completedLessons(userID)
	if err != nil {
		return domain.UserProgress{}, err
	}
	return p, nil
}

func (db *DB) completedLessons(userID string) ([]string, error) {
	rows, err := db.db.Query(`
		SELECT lesson_id FROM completed_lessons WHERE user_id = ? ORDER BY completed_at, lesson_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	defer rows.Close()

	lessons := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		lessons = append(lessons, id)
	}
	return lessons, rows.Err()
}

// ─── Attempt Completion ─────────────────────────────────────────────────────

// RecordAttempt persists a completed attempt and folds it into the user's
// progress in one transaction: attempt row, per-exercise answers, XP grant,
// streak transition, completed-lesson set. All-or-nothing — no XP without a
// matching persisted attempt.
//
// Streak and day math follow the calendar day of now in loc.
func (db *DB) RecordAttempt(att domain.Attempt, now time.Time, loc *time.Location) (domain.ProgressUpdate, error) {
	today := domain.DayString(now, loc)

	tx, err := db.db.Begin()
	if err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO attempts (id, user_id, lesson_id, started_at, completed_at, xp_earned, credits_spent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, att.ID, att.UserID, att.LessonID,
		att.StartedAt.UTC().Format(time.RFC3339), att.CompletedAt.UTC().Format(time.RFC3339),
		att.XPEarned, att.CreditsSpent); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("insert attempt: %w", err)
	}

	for _, ans := range att.Answers {
		if _, err := tx.Exec(`
			INSERT INTO attempt_answers (attempt_id, exercise_id, user_answer, is_correct)
			VALUES (?, ?, ?, ?)
		`, att.ID, ans.ExerciseID, ans.UserAnswer, ans.IsCorrect); err != nil {
			return domain.ProgressUpdate{}, fmt.Errorf("insert answer: %w", err)
		}
	}

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO user_progress (user_id, xp, streak, last_active_date, daily_xp_goal)
		VALUES (?, 0, 0, ?, ?)
	`, att.UserID, today, domain.DefaultDailyGoal); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("create progress: %w", err)
	}

	var streak int
	var activeDay string
	if err := tx.QueryRow(`
		SELECT streak, last_active_date FROM user_progress WHERE user_id = ?
	`, att.UserID).Scan(&streak, &activeDay); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("read progress: %w", err)
	}

	lastActive, err := time.ParseInLocation(time.DateOnly, activeDay, loc)
	if err != nil {
		// Unparseable day: treat as active today so the streak is kept, not reset.
		lastActive = now
	}
	newStreak := domain.NextStreak(streak, domain.DaysBetween(lastActive, now, loc))

	if _, err := tx.Exec(`
		UPDATE user_progress SET xp = xp + ?, streak = ?, last_active_date = ?
		WHERE user_id = ?
	`, att.XPEarned, newStreak, today, att.UserID); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("update progress: %w", err)
	}

	// Idempotent: re-completing a lesson does not duplicate the entry.
	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO completed_lessons (user_id, lesson_id, completed_at)
		VALUES (?, ?, ?)
	`, att.UserID, att.LessonID, now.UTC().Format(time.RFC3339)); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("record completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ProgressUpdate{}, fmt.Errorf("commit attempt: %w", err)
	}
	return domain.ProgressUpdate{XPGained: att.XPEarned, NewStreak: newStreak}, nil
}

// ─── Attempt History ────────────────────────────────────────────────────────

// AttemptSummary is one row of the recent-attempts view.
type AttemptSummary struct {
	ID          string    `json:"id"`
	LessonTitle string    `json:"lessonTitle"`
	XPEarned    int       `json:"xpEarned"`
	Accuracy    int       `json:"accuracy"` // percent, rounded
	CompletedAt time.Time `json:"completedAt"`
}

// RecentAttempts returns the user's latest attempts, newest first.
func (db *DB) RecentAttempts(userID string, limit int) ([]AttemptSummary, error) {
	rows, err := db.db.Query(`
		SELECT a.id,
		       COALESCE(l.title, 'Unknown Lesson'),
		       a.xp_earned,
		       a.completed_at,
		       (SELECT COUNT(*) FROM attempt_answers aa WHERE aa.attempt_id = a.id),
		       (SELECT COUNT(*) FROM attempt_answers aa WHERE aa.attempt_id = a.id AND aa.is_correct = 1)
		FROM attempts a
		LEFT JOIN lessons l ON l.id = a.lesson_id
		WHERE a.user_id = ?
		ORDER BY a.completed_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptSummary
	for rows.Next() {
		var s AttemptSummary
		var completed string
		var total, correct int
		if err := rows.Scan(&s.ID, &s.LessonTitle, &s.XPEarned, &completed, &total, &correct); err != nil {
			return nil, err
		}
		s.CompletedAt, _ = time.Parse(time.RFC3339, completed)
		if total > 0 {
			s.Accuracy = int(float64(correct)/float64(total)*100 + 0.5)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetAttempt returns one attempt with its graded answers, scoped to the
// owning user. Returns domain.ErrAttemptNotFound for other users' attempts.
func (db *DB) GetAttempt(attemptID, userID string) (domain.Attempt, error) {
	var att domain.Attempt
	var started, completed string
	err := db.db.QueryRow(`
		SELECT id, user_id, lesson_id, started_at, completed_at, xp_earned, credits_spent
		FROM attempts WHERE id = ? AND user_id = ?
	`, attemptID, userID).Scan(&att.ID, &att.UserID, &att.LessonID, &started, &completed, &att.XPEarned, &att.CreditsSpent)
	if err == sql.ErrNoRows {
		return domain.Attempt{}, domain.ErrAttemptNotFound
	}
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("get attempt: %w", err)
	}
	att.StartedAt, _ = time.Parse(time.RFC3339, started)
	att.CompletedAt, _ = time.Parse(time.RFC3339, completed)

	rows, err := db.db.Query(`
		SELECT exercise_id, user_answer, is_correct
		FROM attempt_answers WHERE attempt_id = ? ORDER BY exercise_id
	`, attemptID)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("get answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ans domain.AttemptAnswer
		if err := rows.Scan(&ans.ExerciseID, &ans.UserAnswer, &ans.IsCorrect); err != nil {
			return domain.Attempt{}, err
		}
		att.Answers = append(att.Answers, ans)
	}
	return att, rows.Err()
}
