package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
)

// ─── Content Operations ─────────────────────────────────────────────────────
// The content hierarchy is managed elsewhere (seed command, future admin
// tooling); the core reads it for lesson existence and canonical answers.

// UpsertCourse inserts or replaces a course row.
func (db *DB) UpsertCourse(c domain.Course) error {
	_, err := db.db.Exec(`
		INSERT INTO courses (id, title, description, language)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			language    = excluded.language
	`, c.ID, c.Title, c.Description, c.Language)
	return err
}

// UpsertUnit inserts or replaces a unit row.
func (db *DB) UpsertUnit(u domain.Unit) error {
	_, err := db.db.Exec(`
		INSERT INTO units (id, course_id, title, description, ord)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			course_id   = excluded.course_id,
			title       = excluded.title,
			description = excluded.description,
			ord         = excluded.ord
	`, u.ID, u.CourseID, u.Title, u.Description, u.Order)
	return err
}

// UpsertLesson inserts or replaces a lesson row.
func (db *DB) UpsertLesson(l domain.Lesson) error {
	typ := l.Type
	if typ == "" {
		typ = domain.LessonGraded
	}
	_, err := db.db.Exec(`
		INSERT INTO lessons (id, unit_id, title, description, ord, xp_reward, type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			unit_id     = excluded.unit_id,
			title       = excluded.title,
			description = excluded.description,
			ord         = excluded.ord,
			xp_reward   = excluded.xp_reward,
			type        = excluded.type
	`, l.ID, l.UnitID, l.Title, l.Description, l.Order, l.XPReward, typ)
	return err
}

// UpsertExercise inserts or replaces an exercise row. Options are stored
// as a JSON array, matching how MCQ choices travel to the client.
func (db *DB) UpsertExercise(e domain.Exercise) error {
	options, err := json.Marshal(e.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if e.Options == nil {
		options = []byte("[]")
	}
	_, err = db.db.Exec(`
		INSERT INTO exercises (id, lesson_id, type, prompt, question, options_json, answer, explanation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			lesson_id    = excluded.lesson_id,
			type         = excluded.type,
			prompt       = excluded.prompt,
			question     = excluded.question,
			options_json = excluded.options_json,
			answer       = excluded.answer,
			explanation  = excluded.explanation
	`, e.ID, e.LessonID, e.Type, e.Prompt, e.Question, string(options), e.Answer, e.Explanation)
	return err
}

// ListCourses returns all courses without their unit trees.
func (db *DB) ListCourses() ([]domain.Course, error) {
	rows, err := db.db.Query(`SELECT id, title, description, language FROM courses ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Language); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse returns a course with its units and lessons (exercises omitted).
func (db *DB) GetCourse(courseID string) (domain.Course, error) {
	var c domain.Course
	err := db.db.QueryRow(`
		SELECT id, title, description, language FROM courses WHERE id = ?
	`, courseID).Scan(&c.ID, &c.Title, &c.Description, &c.Language)
	if err == sql.ErrNoRows {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	if err != nil {
		return domain.Course{}, fmt.Errorf("get course: %w", err)
	}

	units, err := db.unitsForCourse(courseID)
	if err != nil {
		return domain.Course{}, err
	}
	c.Units = units
	return c, nil
}

func (db *DB) unitsForCourse(courseID string) ([]domain.Unit, error) {
	rows, err := db.db.Query(`
		SELECT id, course_id, title, description, ord
		FROM units WHERE course_id = ? ORDER BY ord
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.ID, &u.CourseID, &u.Title, &u.Description, &u.Order); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range units {
		lessons, err := db.lessonsForUnit(units[i].ID)
		if err != nil {
			return nil, err
		}
		units[i].Lessons = lessons
	}
	return units, nil
}

func (db *DB) lessonsForUnit(unitID string) ([]domain.Lesson, error) {
	rows, err := db.db.Query(`
		SELECT id, unit_id, title, description, ord, xp_reward, type
		FROM lessons WHERE unit_id = ? ORDER BY ord
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.UnitID, &l.Title, &l.Description, &l.Order, &l.XPReward, &l.Type); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// GetLesson returns a lesson with its exercises, including canonical
// answers. Returns domain.ErrLessonNotFound for unknown ids.
func (db *DB) GetLesson(lessonID string) (domain.Lesson, error) {
	var l domain.Lesson
	err := db.db.QueryRow(`
		SELECT id, unit_id, title, description, ord, xp_reward, type
		FROM lessons WHERE id = ?
	`, lessonID).Scan(&l.ID, &l.UnitID, &l.Title, &l.Description, &l.Order, &l.XPReward, &l.Type)
	if err == sql.ErrNoRows {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}

	rows, err := db.db.Query(`
		SELECT id, lesson_id, type, prompt, question, options_json, answer, explanation
		FROM exercises WHERE lesson_id = ? ORDER BY id
	`, lessonID)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Exercise
		var optionsJSON string
		if err := rows.Scan(&e.ID, &e.LessonID, &e.Type, &e.Prompt, &e.Question, &optionsJSON, &e.Answer, &e.Explanation); err != nil {
			return domain.Lesson{}, err
		}
		if e.Type == domain.ExerciseMCQ {
			if err := json.Unmarshal([]byte(optionsJSON), &e.Options); err != nil {
				e.Options = nil
			}
		}
		l.Exercises = append(l.Exercises, e)
	}
	return l, rows.Err()
}

// NextLessonID walks the learning path: the next lesson in the same unit,
// else the first lesson of the next unit, else "" at the end of the course.
func (db *DB) NextLessonID(lessonID string) (string, error) {
	var unitID string
	var ord int
	err := db.db.QueryRow(`SELECT unit_id, ord FROM lessons WHERE id = ?`, lessonID).Scan(&unitID, &ord)
	if err == sql.ErrNoRows {
		return "", domain.ErrLessonNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get lesson: %w", err)
	}

	var next string
	err = db.db.QueryRow(`
		SELECT id FROM lessons WHERE unit_id = ? AND ord > ? ORDER BY ord LIMIT 1
	`, unitID, ord).Scan(&next)
	if err == nil {
		return next, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("next lesson: %w", err)
	}

	// End of unit: first lesson of the next unit in the course.
	err = db.db.QueryRow(`
		SELECT l.id
		FROM units u
		JOIN lessons l ON l.unit_id = u.id
		WHERE u.course_id = (SELECT course_id FROM units WHERE id = ?)
		  AND u.ord > (SELECT ord FROM units WHERE id = ?)
		ORDER BY u.ord, l.ord
		LIMIT 1
	`, unitID, unitID).Scan(&next)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("next unit lesson: %w", err)
	}
	return next, nil
}
