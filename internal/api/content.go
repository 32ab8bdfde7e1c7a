package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.ListCourses()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.db.GetCourse(chi.URLParam(r, "courseId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.db.GetLesson(chi.URLParam(r, "lessonId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

// handleNextLesson resolves the lesson that follows the given one in its
// course. An empty nextLessonId means the course is finished.
func (s *Server) handleNextLesson(w http.ResponseWriter, r *http.Request) {
	next, err := s.db.NextLessonID(chi.URLParam(r, "lessonId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"nextLessonId": next})
}
