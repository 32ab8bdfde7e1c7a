package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. The API layer maps
// them to structured failure responses; they never surface as panics.

var (
	// Lookup errors
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAttemptNotFound = errors.New("attempt not found")

	// Request errors
	ErrUserRequired = errors.New("authenticated user id required")
)
