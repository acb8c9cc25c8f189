package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleJoin registers a new participant in the current session
func (h *Handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Session.Join(r.Context(), req.SessionID, req.UserName)
	if err := h.warned(err); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleReconnect resumes a participant who refreshed their client
func (h *Handlers) handleReconnect(w http.ResponseWriter, r *http.Request) {
	var req ReconnectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Session.Reconnect(r.Context(), req.UserID, req.SessionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleUserContestants returns the roster and categories for a known user
func (h *Handlers) handleUserContestants(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	view, err := h.Session.ViewForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleVote records one score
func (h *Handlers) handleVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := h.Session.RecordVote(r.Context(), req.UserID, req.ContestantID, req.CategoryID, req.Score)
	if err := h.warned(err); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Vote recorded")
}

// handleUserVotes returns a user's vote bucket
func (h *Handlers) handleUserVotes(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	votes, err := h.Session.VotesForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, votes)
}
