package handlers

import "net/http"

// handleResults returns the aggregate rankings. An optional user_id query
// parameter narrows the per-user top list to that participant.
func (h *Handlers) handleResults(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	respondOK(w, h.Session.ComputeResults(r.Context(), userID))
}

// handleResultsRevealed reports the reveal gate state so participant
// clients can poll for the shared-view unlock
func (h *Handlers) handleResultsRevealed(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RevealedResponse{ResultsRevealed: h.Session.IsRevealed(r.Context())})
}
