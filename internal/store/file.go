package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/models"
)

// FileStore persists the session record as a JSON file. Writes go to a
// temporary file in the same directory followed by an atomic rename, so a
// crash mid-write never corrupts the previous snapshot.
type FileStore struct {
	log  logger.Logger
	path string
}

// NewFileStore creates a FileStore writing to path
func NewFileStore(log logger.Logger, path string) *FileStore {
	return &FileStore{log: log, path: path}
}

// Snapshot writes the record, replacing any prior snapshot
func (s *FileStore) Snapshot(record *models.SessionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Restore loads the latest snapshot. A missing file means no snapshot; a
// torn or unparseable file is treated the same way (logged, never
// propagated as corruption).
func (s *FileStore) Restore() (*models.SessionRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var record models.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.log.Warn("Discarding unreadable session snapshot", "path", s.path, "error", err)
		return nil, nil
	}
	record.Normalize()
	return &record, nil
}

// Purge removes the durable snapshot
func (s *FileStore) Purge() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
