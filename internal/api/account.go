package api

import "net/http"

// handleDeleteAccount erases every row belonging to the user: wallet,
// ledger, progress, completions, attempts.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.db.EraseUser(userID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
