// Package mock provides an in-memory SnapshotStore for tests.
package mock

import (
	"sync"

	"github.com/oskarw/mellovote/internal/models"
)

// Store is an in-memory SnapshotStore. It records every snapshot taken and
// can be told to fail, which lets tests exercise the persistence-warning
// path without touching disk.
type Store struct {
	mu            sync.Mutex
	snapshot      *models.SessionRecord
	SnapshotCalls int
	PurgeCalls    int
	SnapshotErr   error
	RestoreErr    error
	PurgeErr      error
}

// New creates an empty mock store
func New() *Store {
	return &Store{}
}

// Seed sets the record the next Restore will return
func (s *Store) Seed(record *models.SessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = record.Clone()
}

// Snapshot stores a deep copy of the record
func (s *Store) Snapshot(record *models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SnapshotCalls++
	if s.SnapshotErr != nil {
		return s.SnapshotErr
	}
	s.snapshot = record.Clone()
	return nil
}

// Restore returns the last stored snapshot, or (nil, nil) if none
func (s *Store) Restore() (*models.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RestoreErr != nil {
		return nil, s.RestoreErr
	}
	if s.snapshot == nil {
		return nil, nil
	}
	return s.snapshot.Clone(), nil
}

// Purge drops the stored snapshot
func (s *Store) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PurgeCalls++
	if s.PurgeErr != nil {
		return s.PurgeErr
	}
	s.snapshot = nil
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

// Last returns the most recent snapshot (for assertions)
func (s *Store) Last() *models.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.Clone()
}
