// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores HTTP response bodies in a local SQLite database so
// repeated runs against the same public APIs do not re-fetch. Keyed by full
// request URL; entries never expire, clear the file to reset.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "responses.db"

// Store is a SQLite-backed response cache. It satisfies the fetch client's
// ResponseCache interface.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS responses (
		url TEXT PRIMARY KEY,
		content_type TEXT,
		body BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached body for url, if present. Lookup errors are
// treated as misses; the caller falls through to the network.
func (s *Store) Get(url string) (body []byte, contentType string, ok bool) {
	row := s.db.QueryRow(`SELECT body, content_type FROM responses WHERE url = ?`, url)
	if err := row.Scan(&body, &contentType); err != nil {
		return nil, "", false
	}
	return body, contentType, true
}

// Put stores a response body, replacing any previous entry for the URL.
func (s *Store) Put(url, contentType string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO responses (url, content_type, body, fetched_at) VALUES (?, ?, ?, ?)`,
		url, contentType, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching response for %s: %w", url, err)
	}
	return nil
}
