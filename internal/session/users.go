package session

import (
	"context"
	"strings"

	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/models"
)

// JoinResult is returned to a participant who joined the session
type JoinResult struct {
	UserID      string              `json:"user_id"`
	Contestants []models.Contestant `json:"contestants"`
	Categories  []models.Category   `json:"categories"`
}

// Join registers a new participant. The session code is matched
// case-insensitively. Each join allocates a fresh user id and an empty
// vote bucket; identities never survive a restart or retire.
func (m *Manager) Join(ctx context.Context, sessionID, userName string) (*JoinResult, error) {
	m.mu.Lock()
	if !m.record.Active() {
		m.mu.Unlock()
		return nil, errors.NoActiveSession()
	}
	if !strings.EqualFold(sessionID, m.record.SessionID) {
		m.mu.Unlock()
		return nil, errors.SessionMismatch("invalid session code")
	}

	userID := m.ids.UserID()
	m.record.Users[userID] = models.User{ID: userID, Name: userName}
	m.record.Votes[userID] = make(models.VoteSet)
	result := &JoinResult{
		UserID:      userID,
		Contestants: append([]models.Contestant(nil), m.record.Contestants...),
		Categories:  models.Categories(),
	}
	userCount := len(m.record.Users)
	warn := m.persistLocked()
	m.mu.Unlock()

	m.log.Info("User joined", "user_id", userID, "name", userName, "active_users", userCount)
	m.notify("user_joined", map[string]int{"active_users": userCount})
	return result, warn
}

// ReconnectResult lets a returning client resume where it left off
type ReconnectResult struct {
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name"`
	Contestants []models.Contestant `json:"contestants"`
	Categories  []models.Category   `json:"categories"`
	Votes       models.VoteSet      `json:"votes"`
}

// Reconnect resurrects a client that refreshed or lost its connection.
// A stale identity (session reset or retired since the client last
// connected) fails here and forces a re-join.
func (m *Manager) Reconnect(ctx context.Context, userID, sessionID string) (*ReconnectResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !strings.EqualFold(sessionID, m.record.SessionID) || !m.record.Active() {
		return nil, errors.SessionMismatch("invalid session code")
	}
	user, ok := m.record.Users[userID]
	if !ok {
		return nil, errors.NotFound("user not found")
	}

	votes := m.record.Votes[userID].Clone()
	if votes == nil {
		votes = make(models.VoteSet)
	}
	return &ReconnectResult{
		UserID:      user.ID,
		UserName:    user.Name,
		Contestants: append([]models.Contestant(nil), m.record.Contestants...),
		Categories:  models.Categories(),
		Votes:       votes,
	}, nil
}

// UserView returns the roster and categories for a known user
type UserView struct {
	Contestants []models.Contestant `json:"contestants"`
	Categories  []models.Category   `json:"categories"`
}

// ViewForUser returns the voting view for a known user
func (m *Manager) ViewForUser(ctx context.Context, userID string) (*UserView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.record.Users[userID]; !ok {
		return nil, errors.NotFound("user not found")
	}
	return &UserView{
		Contestants: append([]models.Contestant(nil), m.record.Contestants...),
		Categories:  models.Categories(),
	}, nil
}
