package sqlite

import (
	"testing"
	"time"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
)

func makeAttempt(id, userID, lessonID string, correct, total int, at time.Time) domain.Attempt {
	answers := make([]domain.AttemptAnswer, 0, total)
	for i := 0; i < total; i++ {
		answers = append(answers, domain.AttemptAnswer{
			ExerciseID: lessonID + "_ex" + string(rune('a'+i)),
			UserAnswer: "answer",
			IsCorrect:  i < correct,
		})
	}
	return domain.Attempt{
		ID:           id,
		UserID:       userID,
		LessonID:     lessonID,
		StartedAt:    at.Add(-2 * time.Minute),
		CompletedAt:  at,
		XPEarned:     domain.XPForAttempt(correct),
		CreditsSpent: domain.LessonCost,
		Answers:      answers,
	}
}

// ─── Progress Defaults ──────────────────────────────────────────────────────

func TestGetOrCreateProgress_Defaults(t *testing.T) {
	db := newTestDB(t)

	p, err := db.GetOrCreateProgress("alice", testToday)
	if err != nil {
		t.Fatalf("GetOrCreateProgress() error: %v", err)
	}
	if p.XP != 0 || p.Streak != 0 {
		t.Errorf("fresh progress = xp %d streak %d, want 0 0", p.XP, p.Streak)
	}
	if p.DailyXPGoal != domain.DefaultDailyGoal {
		t.Errorf("dailyXpGoal = %d, want %d", p.DailyXPGoal, domain.DefaultDailyGoal)
	}
	if len(p.CompletedLessons) != 0 {
		t.Errorf("completedLessons = %v, want empty", p.CompletedLessons)
	}
}

// ─── Attempt Completion ─────────────────────────────────────────────────────

func TestRecordAttempt_GrantsXP(t *testing.T) {
	db := newTestDB(t)

	att := makeAttempt("att1", "alice", "lesson_1", 6, 8, testNow)
	update, err := db.RecordAttempt(att, testNow, time.UTC)
	if err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}
	if update.XPGained != 80 {
		t.Errorf("xpGained = %d, want 80 (6×10+20)", update.XPGained)
	}
	if update.NewStreak != 1 {
		t.Errorf("newStreak = %d, want 1 for first completion", update.NewStreak)
	}

	p, _ := db.GetOrCreateProgress("alice", testToday)
	if p.XP != 80 {
		t.Errorf("cumulative xp = %d, want 80", p.XP)
	}
	if len(p.CompletedLessons) != 1 || p.CompletedLessons[0] != "lesson_1" {
		t.Errorf("completedLessons = %v, want [lesson_1]", p.CompletedLessons)
	}
}

func TestRecordAttempt_StreakProgression(t *testing.T) {
	db := newTestDB(t)
	day0 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Day 0: streak 0 → 1.
	u, err := db.RecordAttempt(makeAttempt("a0", "alice", "l1", 1, 1, day0), day0, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if u.NewStreak != 1 {
		t.Fatalf("day 0 streak = %d, want 1", u.NewStreak)
	}

	// Day 1: consecutive → 2.
	day1 := day0.AddDate(0, 0, 1)
	u, err = db.RecordAttempt(makeAttempt("a1", "alice", "l2", 1, 1, day1), day1, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if u.NewStreak != 2 {
		t.Fatalf("day 1 streak = %d, want 2", u.NewStreak)
	}

	// Second completion the same day: unchanged.
	u, err = db.RecordAttempt(makeAttempt("a1b", "alice", "l3", 1, 1, day1), day1, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if u.NewStreak != 2 {
		t.Fatalf("same-day streak = %d, want 2", u.NewStreak)
	}

	// Skip to day 4: broken → 1.
	day4 := day0.AddDate(0, 0, 4)
	u, err = db.RecordAttempt(makeAttempt("a4", "alice", "l4", 1, 1, day4), day4, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if u.NewStreak != 1 {
		t.Fatalf("day 4 streak = %d, want 1 (reset)", u.NewStreak)
	}
}

func TestRecordAttempt_RecompletionRegrantsXPOnce(t *testing.T) {
	db := newTestDB(t)

	db.RecordAttempt(makeAttempt("a1", "alice", "lesson_1", 2, 2, testNow), testNow, time.UTC)
	db.RecordAttempt(makeAttempt("a2", "alice", "lesson_1", 2, 2, testNow), testNow, time.UTC)

	p, _ := db.GetOrCreateProgress("alice", testToday)
	// XP is re-granted on re-completion; the completed set is not duplicated.
	if p.XP != 80 {
		t.Errorf("xp = %d, want 80 (40 twice)", p.XP)
	}
	if len(p.CompletedLessons) != 1 {
		t.Errorf("completedLessons = %v, want one entry", p.CompletedLessons)
	}
}

func TestRecordAttempt_AllOrNothing(t *testing.T) {
	db := newTestDB(t)

	att := makeAttempt("dup", "alice", "lesson_1", 3, 3, testNow)
	if _, err := db.RecordAttempt(att, testNow, time.UTC); err != nil {
		t.Fatal(err)
	}
	before, _ := db.GetOrCreateProgress("alice", testToday)

	// Re-inserting the same attempt id violates the primary key; the whole
	// transaction must roll back without touching progress.
	if _, err := db.RecordAttempt(att, testNow, time.UTC); err == nil {
		t.Fatal("duplicate attempt id should fail")
	}
	after, _ := db.GetOrCreateProgress("alice", testToday)
	if after.XP != before.XP || after.Streak != before.Streak {
		t.Errorf("failed write leaked progress: %+v -> %+v", before, after)
	}
}

// ─── Attempt History ────────────────────────────────────────────────────────

func TestRecentAttempts(t *testing.T) {
	db := newTestDB(t)
	db.UpsertLesson(domain.Lesson{ID: "lesson_1", UnitID: "u1", Title: "Greetings", XPReward: 20})

	db.RecordAttempt(makeAttempt("a1", "alice", "lesson_1", 3, 4, testNow.Add(-time.Hour)), testNow.Add(-time.Hour), time.UTC)
	db.RecordAttempt(makeAttempt("a2", "alice", "lesson_1", 4, 4, testNow), testNow, time.UTC)
	db.RecordAttempt(makeAttempt("b1", "bob", "lesson_1", 1, 4, testNow), testNow, time.UTC)

	recent, err := db.RecentAttempts("alice", 5)
	if err != nil {
		t.Fatalf("RecentAttempts() error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2 (bob's attempt excluded)", len(recent))
	}
	if recent[0].ID != "a2" {
		t.Errorf("first = %s, want newest a2", recent[0].ID)
	}
	if recent[0].Accuracy != 100 {
		t.Errorf("a2 accuracy = %d, want 100", recent[0].Accuracy)
	}
	if recent[1].Accuracy != 75 {
		t.Errorf("a1 accuracy = %d, want 75", recent[1].Accuracy)
	}
	if recent[0].LessonTitle != "Greetings" {
		t.Errorf("lessonTitle = %q, want Greetings", recent[0].LessonTitle)
	}
}

func TestGetAttempt_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	db.RecordAttempt(makeAttempt("a1", "alice", "lesson_1", 2, 3, testNow), testNow, time.UTC)

	att, err := db.GetAttempt("a1", "alice")
	if err != nil {
		t.Fatalf("GetAttempt() error: %v", err)
	}
	if len(att.Answers) != 3 {
		t.Errorf("answers = %d, want 3", len(att.Answers))
	}

	if _, err := db.GetAttempt("a1", "mallory"); err != domain.ErrAttemptNotFound {
		t.Errorf("foreign attempt error = %v, want ErrAttemptNotFound", err)
	}
}
