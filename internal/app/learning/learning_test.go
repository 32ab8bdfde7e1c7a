package learning

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
	exercises := []domain.Exercise{
		{ID: "ex1", LessonID: "lesson_1", Type: domain.ExerciseMCQ, Question: "Hello", Answer: "Hola"},
		{ID: "ex2", LessonID: "lesson_1", Type: domain.ExerciseMCQ, Question: "Goodbye", Answer: "Adiós"},
		{ID: "ex3", LessonID: "lesson_1", Type: domain.ExerciseFillBlank, Question: "___ días", Answer: "Buenos"},
	}
	for _, e := range exercises {
		if err := db.UpsertExercise(e); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewService(db, time.UTC)
	svc.SetClock(func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) })
	return svc, db
}

func TestCompleteAttempt_ScoresServerSide(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.CompleteAttempt("alice", "lesson_1", []domain.AnswerSubmission{
		{ExerciseID: "ex1", UserAnswer: " hola "},   // correct after trim+fold
		{ExerciseID: "ex2", UserAnswer: "Hasta luego"}, // wrong
		{ExerciseID: "ex3", UserAnswer: "BUENOS"},   // correct
	})
	if err != nil {
		t.Fatalf("CompleteAttempt() error: %v", err)
	}
	if res.XPEarned != 40 {
		t.Errorf("xpEarned = %d, want 40 (2×10+20)", res.XPEarned)
	}
	if res.NewStreak != 1 {
		t.Errorf("newStreak = %d, want 1", res.NewStreak)
	}
	if res.AttemptID == "" {
		t.Error("attemptId must be set")
	}
}

func TestCompleteAttempt_DuplicateExerciseSubmissions(t *testing.T) {
	svc, db := newTestService(t)

	// A client may re-answer an exercise within one attempt. The attempt
	// must persist cleanly with one answer row per exercise, the last
	// submission counting.
	res, err := svc.CompleteAttempt("alice", "lesson_1", []domain.AnswerSubmission{
		{ExerciseID: "ex1", UserAnswer: "wrong"},
		{ExerciseID: "ex2", UserAnswer: "Adiós"},
		{ExerciseID: "ex1", UserAnswer: "Hola"},
	})
	if err != nil {
		t.Fatalf("CompleteAttempt() error: %v", err)
	}
	if res.XPEarned != 40 {
		t.Errorf("xpEarned = %d, want 40 (2×10+20)", res.XPEarned)
	}

	att, err := db.GetAttempt(res.AttemptID, "alice")
	if err != nil {
		t.Fatalf("GetAttempt() error: %v", err)
	}
	if len(att.Answers) != 2 {
		t.Fatalf("persisted %d answers, want 2", len(att.Answers))
	}
	for _, a := range att.Answers {
		if a.ExerciseID == "ex1" && (a.UserAnswer != "Hola" || !a.IsCorrect) {
			t.Errorf("ex1 persisted as %+v, want the later correct answer", a)
		}
	}
}

func TestCompleteAttempt_UnknownLesson(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CompleteAttempt("alice", "ghost", nil)
	if !errors.Is(err, domain.ErrLessonNotFound) {
		t.Errorf("error = %v, want ErrLessonNotFound", err)
	}
}

func TestCompleteAttempt_StreakAcrossDays(t *testing.T) {
	svc, _ := newTestService(t)

	day := func(d int) func() time.Time {
		return func() time.Time { return time.Date(2024, 6, d, 20, 0, 0, 0, time.UTC) }
	}

	svc.SetClock(day(1))
	res, err := svc.CompleteAttempt("alice", "lesson_1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.NewStreak != 1 {
		t.Fatalf("day 1 streak = %d, want 1", res.NewStreak)
	}

	svc.SetClock(day(2))
	res, _ = svc.CompleteAttempt("alice", "lesson_1", nil)
	if res.NewStreak != 2 {
		t.Fatalf("day 2 streak = %d, want 2", res.NewStreak)
	}

	svc.SetClock(day(6))
	res, _ = svc.CompleteAttempt("alice", "lesson_1", nil)
	if res.NewStreak != 1 {
		t.Fatalf("day 6 streak = %d, want 1 after the gap", res.NewStreak)
	}
}

func TestCompleteAttempt_EmptySubmissionStillCompletes(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.CompleteAttempt("alice", "lesson_1", nil)
	if err != nil {
		t.Fatal(err)
	}
	// Zero correct answers still earn the flat completion bonus.
	if res.XPEarned != domain.XPPerCompletion {
		t.Errorf("xpEarned = %d, want %d", res.XPEarned, domain.XPPerCompletion)
	}
}

func TestProgress_Snapshot(t *testing.T) {
	svc, _ := newTestService(t)
	svc.CompleteAttempt("alice", "lesson_1", []domain.AnswerSubmission{
		{ExerciseID: "ex1", UserAnswer: "Hola"},
	})

	p, err := svc.Progress("alice")
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 30 {
		t.Errorf("xp = %d, want 30", p.XP)
	}
	if p.Streak != 1 {
		t.Errorf("streak = %d, want 1", p.Streak)
	}
	if len(p.CompletedLessons) != 1 || p.CompletedLessons[0] != "lesson_1" {
		t.Errorf("completedLessons = %v, want [lesson_1]", p.CompletedLessons)
	}
}

func TestRecentAndDetail(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.CompleteAttempt("alice", "lesson_1", []domain.AnswerSubmission{
		{ExerciseID: "ex1", UserAnswer: "Hola"},
		{ExerciseID: "ex2", UserAnswer: "wrong"},
	})
	if err != nil {
		t.Fatal(err)
	}

	recent, err := svc.RecentAttempts("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].ID != res.AttemptID {
		t.Fatalf("recent = %+v, want the new attempt", recent)
	}
	if recent[0].Accuracy != 50 {
		t.Errorf("accuracy = %d, want 50", recent[0].Accuracy)
	}

	detail, err := svc.Attempt(res.AttemptID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if detail.MistakesCount != 1 {
		t.Errorf("mistakesCount = %d, want 1", detail.MistakesCount)
	}
	if detail.Lesson.Title != "Greetings" {
		t.Errorf("lesson title = %q, want Greetings", detail.Lesson.Title)
	}

	if _, err := svc.Attempt(res.AttemptID, "bob"); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Errorf("foreign attempt error = %v, want ErrAttemptNotFound", err)
	}
}
