package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/skip2/go-qrcode"
)

// qrImageSize is the pixel size of generated join QR codes
const qrImageSize = 256

// handleInitSession opens a fresh session generation
func (h *Handlers) handleInitSession(w http.ResponseWriter, r *http.Request) {
	var req InitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Session.InitializeSession(r.Context(), req.NumContestants, req.ContestantNames)
	if err := h.warned(err); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleStatus returns the current session state for the admin view
func (h *Handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Session.GetStatus(r.Context()))
}

// handleAddContestants appends contestants to the roster
func (h *Handlers) handleAddContestants(w http.ResponseWriter, r *http.Request) {
	var req AddContestantsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	contestants, err := h.Session.AddContestants(r.Context(), req.Contestants)
	if err := h.warned(err); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ContestantsResponse{Contestants: contestants, NumContestants: len(contestants)})
}

// handleUpdateContestant renames a contestant
func (h *Handlers) handleUpdateContestant(w http.ResponseWriter, r *http.Request) {
	var req UpdateContestantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	contestant, err := h.Session.RenameContestant(r.Context(), req.ContestantID, req.Name)
	if err := h.warned(err); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ContestantResponse{Contestant: contestant})
}

// handleResetSession clears votes and users but keeps the session open
func (h *Handlers) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.warned(h.Session.RestartSession(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session reset successfully")
}

// handleStartNewSession retires the current session entirely
func (h *Handlers) handleStartNewSession(w http.ResponseWriter, r *http.Request) {
	if err := h.warned(h.Session.RetireSession(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "New session started, ready for setup")
}

// handleRevealResults opens the one-way reveal gate
func (h *Handlers) handleRevealResults(w http.ResponseWriter, r *http.Request) {
	if err := h.warned(h.Session.RevealResults(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, RevealedResponse{ResultsRevealed: true})
}

// handleGenerateQRCode encodes the posted join URL as a QR PNG and stores
// it on the session record for later retrieval
func (h *Handlers) handleGenerateQRCode(w http.ResponseWriter, r *http.Request) {
	var req QRCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.JoinURL == "" {
		respondError(w, BadRequest("No join URL provided"))
		return
	}

	png, err := qrcode.Encode(req.JoinURL, qrcode.Medium, qrImageSize)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	if err := h.warned(h.Session.SetJoinQR(r.Context(), dataURL)); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, QRCodeResponse{QRCode: dataURL})
}

// handleGetQRCode returns the previously generated join QR code
func (h *Handlers) handleGetQRCode(w http.ResponseWriter, r *http.Request) {
	dataURL := h.Session.JoinQR(r.Context())
	if dataURL == "" {
		respondError(w, BadRequest("No QR code generated yet"))
		return
	}
	respondOK(w, QRCodeResponse{QRCode: dataURL})
}

// handleLocalIP reports the LAN address participants should use
func (h *Handlers) handleLocalIP(w http.ResponseWriter, r *http.Request) {
	ip := "localhost"
	if h.LocalIP != nil {
		ip = h.LocalIP()
	}
	respondOK(w, LocalIPResponse{LocalIP: ip, ClientPort: h.ClientPort})
}
