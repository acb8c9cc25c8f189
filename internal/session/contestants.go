package session

import (
	"context"

	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/models"
)

// AddContestants appends new contestants in input order. Ids continue from
// the highest id ever assigned, so ids are never renumbered or reused
// within a generation.
func (m *Manager) AddContestants(ctx context.Context, names []string) ([]models.Contestant, error) {
	if len(names) == 0 {
		return nil, errors.Validation("contestant name list is empty")
	}

	m.mu.Lock()
	maxID := 0
	for _, c := range m.record.Contestants {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	for i, name := range names {
		m.record.Contestants = append(m.record.Contestants, models.Contestant{
			ID:   maxID + i + 1,
			Name: name,
		})
	}
	updated := append([]models.Contestant(nil), m.record.Contestants...)
	warn := m.persistLocked()
	m.mu.Unlock()

	m.log.Info("Contestants added", "count", len(names), "total", len(updated))
	m.notify("session_update", map[string]int{"contestants": len(updated)})
	return updated, warn
}

// RenameContestant renames a contestant in place. Votes are keyed by id,
// so existing votes are unaffected.
func (m *Manager) RenameContestant(ctx context.Context, contestantID int, name string) (models.Contestant, error) {
	m.mu.Lock()
	idx := -1
	for i, c := range m.record.Contestants {
		if c.ID == contestantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return models.Contestant{}, errors.NotFoundf("contestant %d not found", contestantID)
	}
	m.record.Contestants[idx].Name = name
	renamed := m.record.Contestants[idx]
	warn := m.persistLocked()
	m.mu.Unlock()

	m.notify("session_update", map[string]int{"contestant_renamed": contestantID})
	return renamed, warn
}
