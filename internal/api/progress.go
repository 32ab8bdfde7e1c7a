package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
)

// handleProgress returns the user's XP, streak, and completed lessons.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	prog, err := s.learning.Progress(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// Clients may still send an isCorrect flag per exercise; it is ignored and
// correctness is recomputed from the canonical answers.
type completeAttemptRequest struct {
	LessonID  string                    `json:"lessonId"`
	Exercises []domain.AnswerSubmission `json:"exercises"`
}

// handleCompleteAttempt scores the submitted answers server-side and
// records the attempt, XP, streak, and lesson completion in one shot.
func (s *Server) handleCompleteAttempt(w http.ResponseWriter, r *http.Request) {
	var req completeAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if req.LessonID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "lessonId is required")
		return
	}
	res, err := s.learning.CompleteAttempt(userID(r), req.LessonID, req.Exercises)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRecentAttempts returns the user's latest attempt summaries.
func (s *Server) handleRecentAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := s.learning.RecentAttempts(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

// handleGetAttempt returns one attempt with its answers, scoped to the
// requesting user.
func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	detail, err := s.learning.Attempt(chi.URLParam(r, "attemptId"), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
