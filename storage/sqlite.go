// Package storage persists small client state between runs. The only
// well-known key today is the bearer token; recent searches ride along in the
// same table.
package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TokenKey is the well-known key the auth session reads and writes.
const TokenKey = "token"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recent_searches (
		id INTEGER PRIMARY KEY,
		query_key TEXT NOT NULL UNIQUE,
		searched_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored value for key, or "" when absent. Absence is not an
// error.
func (s *SQLiteStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())
	return err
}

func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, key)
	return err
}

// RecordSearch remembers a normalized query key, most recent first, keeping
// at most limit rows.
func (s *SQLiteStore) RecordSearch(queryKey string, limit int) error {
	_, err := s.db.Exec(`
		INSERT INTO recent_searches (query_key, searched_at) VALUES (?, ?)
		ON CONFLICT(query_key) DO UPDATE SET searched_at = excluded.searched_at`,
		queryKey, time.Now())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		DELETE FROM recent_searches WHERE id NOT IN (
			SELECT id FROM recent_searches ORDER BY searched_at DESC LIMIT ?
		)`, limit)
	return err
}

func (s *SQLiteStore) RecentSearches(limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT query_key FROM recent_searches ORDER BY searched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
