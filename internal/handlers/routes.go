package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Admin API
	r.Post("/api/admin/init", h.handleInitSession)
	r.Get("/api/admin/status", h.handleStatus)
	r.Post("/api/admin/add-contestants", h.handleAddContestants)
	r.Post("/api/admin/update-contestant", h.handleUpdateContestant)
	r.Post("/api/admin/reset-session", h.handleResetSession)
	r.Post("/api/admin/start-new-session", h.handleStartNewSession)
	r.Post("/api/admin/reveal-results", h.handleRevealResults)
	r.Post("/api/admin/qrcode", h.handleGenerateQRCode)
	r.Get("/api/admin/qrcode", h.handleGetQRCode)

	// Participant API
	r.Post("/api/user/join", h.handleJoin)
	r.Post("/api/user/reconnect", h.handleReconnect)
	r.Post("/api/user/vote", h.handleVote)
	r.Get("/api/user/votes/{userID}", h.handleUserVotes)
	r.Get("/api/user/contestants/{userID}", h.handleUserContestants)

	// Results
	r.Get("/api/results", h.handleResults)
	r.Get("/api/results-revealed", h.handleResultsRevealed)

	// Network info
	r.Get("/api/local-ip", h.handleLocalIP)

	return r
}
