// Package api provides the HTTP server for the learning service: the
// wallet and progress contract consumed by the web client, plus content
// reads, attempt history, health, and metrics.
//
// Identity arrives from the auth collaborator as an X-User-ID header; the
// core trusts it and performs no further authorization.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marufibnehossain/Language-Learning-Website/internal/app/credits"
	"github.com/marufibnehossain/Language-Learning-Website/internal/app/learning"
	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/observability"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

// Server is the HTTP API server.
type Server struct {
	db             *sqlite.DB
	credits        *credits.Service
	learning       *learning.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, cr *credits.Service, ln *learning.Service) *Server {
	return &Server{db: db, credits: cr, learning: ln}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)
	r.Use(observability.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Content reads need no identity.
		r.Get("/courses", s.handleListCourses)
		r.Get("/courses/{courseId}", s.handleGetCourse)
		r.Get("/lessons/{lessonId}", s.handleGetLesson)
		r.Get("/lessons/{lessonId}/next", s.handleNextLesson)

		// Everything below acts on the authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Get("/wallet", s.handleWalletSnapshot)
			r.Post("/wallet", s.handleWalletRefill)
			r.Post("/wallet/spend-for-lesson", s.handleSpendForLesson)
			r.Post("/wallet/bonus", s.handleWalletBonus)
			r.Get("/wallet/ledger", s.handleWalletLedger)

			r.Get("/progress", s.handleProgress)

			r.Post("/attempts/complete", s.handleCompleteAttempt)
			r.Get("/attempts/recent", s.handleRecentAttempts)
			r.Get("/attempts/{attemptId}", s.handleGetAttempt)

			r.Delete("/account", s.handleDeleteAccount)
		})
	})

	return r
}

// ─── Identity ───────────────────────────────────────────────────────────────

type ctxKey int

const userIDKey ctxKey = 0

// requireUser extracts the trusted identity header and rejects requests
// without one.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "VALIDATION", "missing X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// ─── JSON Helpers ───────────────────────────────────────────────────────────

// decodeJSON decodes a request body. Unknown fields are tolerated: older
// clients send data the server no longer reads (e.g. per-exercise
// correctness claims).
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a structured failure response.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": msg,
		},
	})
}

// writeDomainError maps sentinel errors to the error taxonomy. Storage
// failures are logged and surfaced as a generic failure, never with
// internals attached.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrAttemptNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrUserRequired):
		writeError(w, http.StatusUnauthorized, "VALIDATION", err.Error())
	default:
		log.Printf("storage failure: %v", err)
		writeError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "internal error")
	}
}

// corsMiddleware adds CORS headers for the web client.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
