package store

import "github.com/oskarw/mellovote/internal/models"

// SnapshotStore persists the full session record as one durable snapshot.
// A snapshot write must either fully land or visibly fail; implementations
// never leave a partially-written snapshot behind for Restore to pick up.
type SnapshotStore interface {
	// Snapshot serializes the record, replacing any prior snapshot
	Snapshot(record *models.SessionRecord) error
	// Restore loads the latest snapshot. A missing or unreadable snapshot
	// restores as (nil, nil): the caller starts from the empty record.
	Restore() (*models.SessionRecord, error)
	// Purge removes the durable snapshot
	Purge() error
	Close() error
}

// Ensure concrete stores implement the interface
var (
	_ SnapshotStore = (*FileStore)(nil)
	_ SnapshotStore = (*SQLiteStore)(nil)
)
