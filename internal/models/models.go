package models

// The three fixed judging categories. The set never changes for the life
// of the system and is not session-scoped.
const (
	CategoryClothing    = "clothing"
	CategoryPerformance = "performance"
	CategorySong        = "song"
)

// MinScore and MaxScore bound a single vote.
const (
	MinScore = 1
	MaxScore = 10
)

// Category is a judging category descriptor
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories returns the fixed ordered category set
func Categories() []Category {
	return []Category{
		{ID: CategoryClothing, Name: "Clothing"},
		{ID: CategoryPerformance, Name: "Performance"},
		{ID: CategorySong, Name: "Song"},
	}
}

// CategoryIDs returns the ids of the fixed category set in display order
func CategoryIDs() []string {
	return []string{CategoryClothing, CategoryPerformance, CategorySong}
}

// ValidCategory reports whether id names one of the fixed categories
func ValidCategory(id string) bool {
	return id == CategoryClothing || id == CategoryPerformance || id == CategorySong
}

// Contestant is one entry on the session roster
type Contestant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a joined participant
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VoteSet holds one user's scores: contestantID -> categoryID -> score
type VoteSet map[int]map[string]int

// Clone returns a deep copy of the vote set
func (v VoteSet) Clone() VoteSet {
	if v == nil {
		return nil
	}
	out := make(VoteSet, len(v))
	for contestantID, byCategory := range v {
		m := make(map[string]int, len(byCategory))
		for categoryID, score := range byCategory {
			m[categoryID] = score
		}
		out[contestantID] = m
	}
	return out
}

// SessionRecord is the single source of truth for one contest generation.
// It is exclusively owned by the session Manager; everything outside the
// manager sees copies only.
type SessionRecord struct {
	SessionID       string             `json:"session_id"`
	Contestants     []Contestant       `json:"contestants"`
	Users           map[string]User    `json:"users"`
	Votes           map[string]VoteSet `json:"votes"`
	ResultsRevealed bool               `json:"results_revealed"`
	JoinQR          string             `json:"join_qr,omitempty"`
}

// NewSessionRecord returns the empty no-session record
func NewSessionRecord() *SessionRecord {
	return &SessionRecord{
		Users: make(map[string]User),
		Votes: make(map[string]VoteSet),
	}
}

// Active reports whether a session generation is currently open
func (r *SessionRecord) Active() bool {
	return r.SessionID != ""
}

// Clone returns a deep copy of the record
func (r *SessionRecord) Clone() *SessionRecord {
	out := &SessionRecord{
		SessionID:       r.SessionID,
		ResultsRevealed: r.ResultsRevealed,
		JoinQR:          r.JoinQR,
		Contestants:     make([]Contestant, len(r.Contestants)),
		Users:           make(map[string]User, len(r.Users)),
		Votes:           make(map[string]VoteSet, len(r.Votes)),
	}
	copy(out.Contestants, r.Contestants)
	for id, u := range r.Users {
		out.Users[id] = u
	}
	for id, set := range r.Votes {
		out.Votes[id] = set.Clone()
	}
	return out
}

// Normalize repairs nil maps after deserialization so callers can index
// into the record without nil checks
func (r *SessionRecord) Normalize() {
	if r.Users == nil {
		r.Users = make(map[string]User)
	}
	if r.Votes == nil {
		r.Votes = make(map[string]VoteSet)
	}
}

// WSMessage is a message broadcast to WebSocket clients
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
