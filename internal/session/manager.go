// Package session owns the live contest state: the session record, the
// contestant and user registries, the vote matrix and the reveal gate.
// The Manager is the single writer of the record; every mutating operation
// is serialized behind one lock and snapshots the record before returning.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/models"
	"github.com/oskarw/mellovote/internal/store"
)

// Broadcaster pushes state-change events to connected clients
type Broadcaster interface {
	Broadcast(msg models.WSMessage)
}

// IDSource produces session codes and user ids. Injectable for testing.
type IDSource interface {
	SessionID() string
	UserID() string
}

// UUIDSource generates ids from random UUIDs: an 8-character uppercased
// session code and a full UUID per user.
type UUIDSource struct{}

func (UUIDSource) SessionID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func (UUIDSource) UserID() string {
	return uuid.NewString()
}

// Manager orchestrates the session record. All mutating operations take the
// write lock, apply the change, then snapshot synchronously before the lock
// is released. A failed snapshot does not roll the mutation back; it is
// surfaced as a persistence warning alongside the successful result.
type Manager struct {
	log         logger.Logger
	store       store.SnapshotStore
	ids         IDSource
	broadcaster Broadcaster

	mu     sync.RWMutex
	record *models.SessionRecord
}

// Option configures a Manager
type Option func(*Manager)

// WithIDSource overrides the default UUID id source
func WithIDSource(ids IDSource) Option {
	return func(m *Manager) { m.ids = ids }
}

// NewManager creates a Manager, restoring the last snapshot if one exists
func NewManager(log logger.Logger, st store.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		log:   log,
		store: st,
		ids:   UUIDSource{},
	}
	for _, opt := range opts {
		opt(m)
	}

	record, err := st.Restore()
	if err != nil {
		log.Warn("Could not restore session snapshot, starting empty", "error", err)
		record = nil
	}
	if record == nil {
		record = models.NewSessionRecord()
	}
	record.Normalize()
	m.record = record

	if record.Active() {
		log.Info("Restored session from snapshot",
			"session_id", record.SessionID,
			"contestants", len(record.Contestants),
			"users", len(record.Users))
	}
	return m
}

// SetBroadcaster wires the live-update hub. Must be called before the
// manager starts receiving operations.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	m.broadcaster = b
}

// notify publishes an event to connected clients, if a hub is wired
func (m *Manager) notify(msgType string, payload interface{}) {
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(models.WSMessage{Type: msgType, Payload: payload})
	}
}

// persistLocked snapshots the record. Callers must hold the write lock.
// A failure is logged and converted to a persistence warning; the caller
// returns it alongside the operation's successful result.
func (m *Manager) persistLocked() error {
	if err := m.store.Snapshot(m.record); err != nil {
		m.log.Error("Session snapshot failed", "error", err)
		return errors.PersistenceWarning(err)
	}
	return nil
}

// InitResult is the result of initializing a session
type InitResult struct {
	SessionID   string              `json:"session_id"`
	Contestants []models.Contestant `json:"contestants"`
}

// InitializeSession opens a fresh session generation: a new session code,
// a new contestant roster, and cleared votes, users and reveal flag.
func (m *Manager) InitializeSession(ctx context.Context, contestantCount int, names []string) (*InitResult, error) {
	if contestantCount < 1 {
		return nil, errors.Validationf("invalid number of contestants: %d", contestantCount)
	}

	contestants := make([]models.Contestant, 0, contestantCount)
	if len(names) == contestantCount {
		for i, name := range names {
			contestants = append(contestants, models.Contestant{ID: i + 1, Name: name})
		}
	} else {
		// Name list absent or wrong length: fall back to default names
		for i := 0; i < contestantCount; i++ {
			contestants = append(contestants, models.Contestant{ID: i + 1, Name: fmt.Sprintf("Contestant %d", i+1)})
		}
	}

	m.mu.Lock()
	m.record.SessionID = m.ids.SessionID()
	m.record.Contestants = contestants
	m.record.Users = make(map[string]models.User)
	m.record.Votes = make(map[string]models.VoteSet)
	m.record.ResultsRevealed = false
	result := &InitResult{
		SessionID:   m.record.SessionID,
		Contestants: append([]models.Contestant(nil), contestants...),
	}
	warn := m.persistLocked()
	m.mu.Unlock()

	m.log.Info("Session initialized", "session_id", result.SessionID, "contestants", contestantCount)
	m.notify("session_update", map[string]interface{}{"session_id": result.SessionID})
	return result, warn
}

// RestartSession clears votes, users and the reveal flag while keeping the
// session code and the contestant roster. Safe to repeat on an already
// clean session.
func (m *Manager) RestartSession(ctx context.Context) error {
	m.mu.Lock()
	if !m.record.Active() {
		m.mu.Unlock()
		return errors.NoActiveSession()
	}
	m.record.Users = make(map[string]models.User)
	m.record.Votes = make(map[string]models.VoteSet)
	m.record.ResultsRevealed = false
	warn := m.persistLocked()
	sessionID := m.record.SessionID
	m.mu.Unlock()

	m.log.Info("Session restarted", "session_id", sessionID)
	m.notify("session_update", map[string]interface{}{"session_id": sessionID})
	return warn
}

// RetireSession clears the entire record back to the no-session state.
// Always succeeds.
func (m *Manager) RetireSession(ctx context.Context) error {
	m.mu.Lock()
	m.record = models.NewSessionRecord()
	warn := m.persistLocked()
	m.mu.Unlock()

	m.log.Info("Session retired")
	m.notify("session_update", map[string]interface{}{"session_id": ""})
	return warn
}

// Status describes the current session for the admin view
type Status struct {
	SessionID   string              `json:"session_id"`
	Contestants []models.Contestant `json:"contestants"`
	ActiveUsers int                 `json:"active_users"`
	Users       []models.User       `json:"users"`
}

// GetStatus returns a consistent snapshot of the session state
func (m *Manager) GetStatus(ctx context.Context) *Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.record.Users))
	for _, u := range m.record.Users {
		users = append(users, u)
	}
	return &Status{
		SessionID:   m.record.SessionID,
		Contestants: append([]models.Contestant(nil), m.record.Contestants...),
		ActiveUsers: len(m.record.Users),
		Users:       users,
	}
}

// RevealResults opens the one-way reveal gate. Re-invoking once revealed
// is a no-op success; only RestartSession or RetireSession close it again.
func (m *Manager) RevealResults(ctx context.Context) error {
	m.mu.Lock()
	already := m.record.ResultsRevealed
	m.record.ResultsRevealed = true
	var warn error
	if !already {
		warn = m.persistLocked()
	}
	m.mu.Unlock()

	if !already {
		m.log.Info("Results revealed")
		m.notify("results_revealed", map[string]bool{"results_revealed": true})
	}
	return warn
}

// IsRevealed reports whether the admin has revealed the aggregate results
func (m *Manager) IsRevealed(ctx context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record.ResultsRevealed
}

// SetJoinQR stores the generated join QR code on the record so it can be
// fetched again later
func (m *Manager) SetJoinQR(ctx context.Context, dataURL string) error {
	m.mu.Lock()
	m.record.JoinQR = dataURL
	warn := m.persistLocked()
	m.mu.Unlock()
	return warn
}

// JoinQR returns the stored join QR code, or "" when none was generated
func (m *Manager) JoinQR(ctx context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record.JoinQR
}
