package http

import (
	"net/http"

	"finbuddy/internal/auth"
)

// handleDashboard serves the combined income, expense and savings view.
// Summaries are cached per user and recomputed after every ledger
// write, so a cache hit is always as fresh as a recompute.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if summary, ok := s.dashCache.Get(userID); ok {
		respondJSON(w, http.StatusOK, envelope{
			"status":    true,
			"dashboard": summary,
			"cached":    true,
		})
		return
	}

	summary, err := s.summaries.Dashboard(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	s.dashCache.Set(userID, summary)

	respondJSON(w, http.StatusOK, envelope{
		"status":    true,
		"dashboard": summary,
		"cached":    false,
	})
}
