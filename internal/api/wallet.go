package api

import (
	"net/http"
	"strconv"
)

// handleWalletSnapshot returns the wallet, creating it with the starting
// allotment on first access. Refills only happen through the POST trigger.
func (s *Server) handleWalletSnapshot(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.credits.Snapshot(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

// handleWalletRefill applies the daily refill. Idempotent within a
// calendar day: the second call reports applied=false.
func (s *Server) handleWalletRefill(w http.ResponseWriter, r *http.Request) {
	res, err := s.credits.ApplyDailyRefill(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type spendRequest struct {
	LessonID string `json:"lessonId"`
}

// handleSpendForLesson deducts the lesson cost. An insufficient balance is
// a well-formed 400 carrying the unchanged balance so the client can show
// the paywall without a second fetch.
func (s *Server) handleSpendForLesson(w http.ResponseWriter, r *http.Request) {
	var req spendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if req.LessonID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "lessonId is required")
		return
	}
	res, err := s.credits.SpendForLesson(userID(r), req.LessonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleWalletBonus grants the first-lesson-of-the-day bonus. Guarded so
// repeat calls within a day award nothing.
func (s *Server) handleWalletBonus(w http.ResponseWriter, r *http.Request) {
	applied, newBalance, err := s.credits.AwardFirstLessonBonus(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applied":    applied,
		"newBalance": newBalance,
	})
}

// handleWalletLedger returns the most recent credit transactions.
func (s *Server) handleWalletLedger(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := s.credits.Ledger(userID(r), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
