package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/models"
)

// SQLiteStore persists the session record in a SQLite database. Each
// snapshot rewrites the whole record inside one transaction, so a restore
// always sees either the previous snapshot or the new one, never a mix.
type SQLiteStore struct {
	log logger.Logger
	db  *sql.DB
}

// NewSQLiteStore opens (and migrates) a SQLite-backed snapshot store
func NewSQLiteStore(log logger.Logger, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{log: log, db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the snapshot tables
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			session_id TEXT NOT NULL,
			results_revealed BOOLEAN NOT NULL DEFAULT 0,
			join_qr TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS contestants (
			id INTEGER NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			user_id TEXT NOT NULL,
			contestant_id INTEGER NOT NULL,
			category_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			UNIQUE(user_id, contestant_id, category_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Snapshot rewrites the stored record in a single transaction
func (s *SQLiteStore) Snapshot(record *models.SessionRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"session", "contestants", "users", "votes"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO session (id, session_id, results_revealed, join_qr) VALUES (1, ?, ?, ?)",
		record.SessionID, record.ResultsRevealed, record.JoinQR,
	); err != nil {
		return fmt.Errorf("write session row: %w", err)
	}

	for pos, c := range record.Contestants {
		if _, err := tx.Exec(
			"INSERT INTO contestants (id, name, position) VALUES (?, ?, ?)",
			c.ID, c.Name, pos,
		); err != nil {
			return fmt.Errorf("write contestant: %w", err)
		}
	}

	for _, u := range record.Users {
		if _, err := tx.Exec("INSERT INTO users (id, name) VALUES (?, ?)", u.ID, u.Name); err != nil {
			return fmt.Errorf("write user: %w", err)
		}
	}

	for userID, set := range record.Votes {
		for contestantID, byCategory := range set {
			for categoryID, score := range byCategory {
				if _, err := tx.Exec(
					"INSERT INTO votes (user_id, contestant_id, category_id, score) VALUES (?, ?, ?, ?)",
					userID, contestantID, categoryID, score,
				); err != nil {
					return fmt.Errorf("write vote: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Restore loads the stored record, or (nil, nil) when no snapshot exists
func (s *SQLiteStore) Restore() (*models.SessionRecord, error) {
	record := models.NewSessionRecord()

	err := s.db.QueryRow("SELECT session_id, results_revealed, join_qr FROM session WHERE id = 1").
		Scan(&record.SessionID, &record.ResultsRevealed, &record.JoinQR)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session row: %w", err)
	}

	rows, err := s.db.Query("SELECT id, name FROM contestants ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("read contestants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Contestant
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan contestant: %w", err)
		}
		record.Contestants = append(record.Contestants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read contestants: %w", err)
	}

	userRows, err := s.db.Query("SELECT id, name FROM users")
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	defer userRows.Close()
	for userRows.Next() {
		var u models.User
		if err := userRows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		record.Users[u.ID] = u
		// Joined users always have a vote bucket, even before voting
		if _, ok := record.Votes[u.ID]; !ok {
			record.Votes[u.ID] = make(models.VoteSet)
		}
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	voteRows, err := s.db.Query("SELECT user_id, contestant_id, category_id, score FROM votes")
	if err != nil {
		return nil, fmt.Errorf("read votes: %w", err)
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var (
			userID       string
			contestantID int
			categoryID   string
			score        int
		)
		if err := voteRows.Scan(&userID, &contestantID, &categoryID, &score); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		set, ok := record.Votes[userID]
		if !ok {
			set = make(models.VoteSet)
			record.Votes[userID] = set
		}
		if set[contestantID] == nil {
			set[contestantID] = make(map[string]int)
		}
		set[contestantID][categoryID] = score
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("read votes: %w", err)
	}

	return record, nil
}

// Purge removes the durable snapshot
func (s *SQLiteStore) Purge() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"session", "contestants", "users", "votes"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
