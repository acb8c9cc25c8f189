package handlers

// InitSessionRequest represents a request to initialize a session
type InitSessionRequest struct {
	NumContestants  int      `json:"num_contestants"`
	ContestantNames []string `json:"contestant_names,omitempty"`
}

// AddContestantsRequest represents a request to append contestants
type AddContestantsRequest struct {
	Contestants []string `json:"contestants"`
}

// UpdateContestantRequest represents a request to rename a contestant
type UpdateContestantRequest struct {
	ContestantID int    `json:"contestant_id"`
	Name         string `json:"name"`
}

// JoinRequest represents a participant joining the session
type JoinRequest struct {
	SessionID string `json:"session_id"`
	UserName  string `json:"user_name"`
}

// ReconnectRequest represents a participant resuming after a refresh
type ReconnectRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// VoteRequest represents a score submission
type VoteRequest struct {
	UserID       string `json:"user_id"`
	ContestantID int    `json:"contestant_id"`
	CategoryID   string `json:"category_id"`
	Score        int    `json:"score"`
}

// QRCodeRequest represents a request to generate a join QR code
type QRCodeRequest struct {
	JoinURL string `json:"join_url"`
}
