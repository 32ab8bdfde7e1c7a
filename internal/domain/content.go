package domain

// ─── Content Model ──────────────────────────────────────────────────────────
// Courses, units, lessons, and exercises are supplied by the content
// collaborator. The core reads them for lesson existence and canonical
// answers; it never validates content integrity.

// ExerciseType classifies how an exercise is rendered.
type ExerciseType string

const (
	ExerciseMCQ        ExerciseType = "mcq"
	ExerciseFillBlank  ExerciseType = "fill_blank"
	ExerciseMatchPairs ExerciseType = "match_pairs"
)

// LessonType distinguishes graded lessons from free modes.
type LessonType string

const (
	LessonGraded   LessonType = "lesson"
	LessonPractice LessonType = "practice"
	LessonStory    LessonType = "story"
)

// Exercise is a single question with one canonical answer.
type Exercise struct {
	ID          string       `json:"id"`
	LessonID    string       `json:"-"`
	Type        ExerciseType `json:"type"`
	Prompt      string       `json:"prompt"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"` // MCQ only
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

// Lesson is an ordered set of exercises within a unit.
type Lesson struct {
	ID          string     `json:"id"`
	UnitID      string     `json:"unitId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	XPReward    int        `json:"xpReward"`
	Type        LessonType `json:"type"`
	Exercises   []Exercise `json:"exercises,omitempty"`
}

// Unit groups lessons within a course.
type Unit struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"courseId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

// Course is the top of the content hierarchy.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Units       []Unit `json:"units,omitempty"`
}
