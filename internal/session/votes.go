package session

import (
	"context"

	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/models"
)

// RecordVote upserts one score into the vote matrix. Voting is idempotent
// and last-write-wins: a user may revise a prior score for the same
// contestant and category by voting again.
func (m *Manager) RecordVote(ctx context.Context, userID string, contestantID int, categoryID string, score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return errors.Validationf("score must be between %d and %d, got %d", models.MinScore, models.MaxScore, score)
	}
	if !models.ValidCategory(categoryID) {
		return errors.Validationf("unknown category %q", categoryID)
	}

	m.mu.Lock()
	if _, ok := m.record.Users[userID]; !ok {
		m.mu.Unlock()
		return errors.UnknownUser(userID)
	}
	if !m.contestantExistsLocked(contestantID) {
		m.mu.Unlock()
		return errors.NotFoundf("contestant %d not found", contestantID)
	}

	set, ok := m.record.Votes[userID]
	if !ok {
		set = make(models.VoteSet)
		m.record.Votes[userID] = set
	}
	if set[contestantID] == nil {
		set[contestantID] = make(map[string]int)
	}
	set[contestantID][categoryID] = score
	warn := m.persistLocked()
	m.mu.Unlock()

	m.log.Debug("Vote recorded",
		"user_id", userID, "contestant_id", contestantID, "category", categoryID, "score", score)
	m.notify("vote_update", map[string]int{"contestant_id": contestantID})
	return warn
}

// contestantExistsLocked reports whether the roster contains id.
// Callers must hold the lock.
func (m *Manager) contestantExistsLocked(id int) bool {
	for _, c := range m.record.Contestants {
		if c.ID == id {
			return true
		}
	}
	return false
}

// VotesForUser returns a read-only snapshot of the user's vote bucket
func (m *Manager) VotesForUser(ctx context.Context, userID string) (models.VoteSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.record.Users[userID]; !ok {
		return nil, errors.NotFound("user not found")
	}
	votes := m.record.Votes[userID].Clone()
	if votes == nil {
		votes = make(models.VoteSet)
	}
	return votes, nil
}
