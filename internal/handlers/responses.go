package handlers

import "github.com/oskarw/mellovote/internal/models"

// ContestantsResponse is the response after contestant edits
type ContestantsResponse struct {
	Contestants    []models.Contestant `json:"contestants"`
	NumContestants int                 `json:"num_contestants"`
}

// ContestantResponse is the response for a single contestant
type ContestantResponse struct {
	Contestant models.Contestant `json:"contestant"`
}

// RevealedResponse reports the reveal gate state
type RevealedResponse struct {
	ResultsRevealed bool `json:"results_revealed"`
}

// QRCodeResponse carries a join QR code as a PNG data URL
type QRCodeResponse struct {
	QRCode string `json:"qr_code"`
}

// LocalIPResponse tells clients where to reach the server on the LAN
type LocalIPResponse struct {
	LocalIP    string `json:"local_ip"`
	ClientPort int    `json:"client_port"`
}
