// Package cache persists fetched PubMed records in a local SQLite database
// so repeated lookups of the same PMID skip the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
)

const (
	// CacheDir is the cache directory name under the bibliography directory.
	CacheDir = ".refs"
	// DBFile is the cache database file name.
	DBFile = "cache.db"
)

// DefaultPath returns the cache database path for a bibliography directory.
func DefaultPath(bibDir string) string {
	return filepath.Join(bibDir, CacheDir, DBFile)
}

// Store wraps a SQLite connection holding cached PubMed records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS pubmed (
			pmid TEXT PRIMARY KEY,
			record_json TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached record for a PMID, if one exists. Any read or
// decode failure counts as a miss.
func (s *Store) Get(pmid string) (bibtex.Record, bool) {
	var data []byte
	err := s.db.QueryRow(`SELECT record_json FROM pubmed WHERE pmid = ?`, pmid).Scan(&data)
	if err != nil {
		return bibtex.Record{}, false
	}

	var rec bibtex.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return bibtex.Record{}, false
	}
	return rec, true
}

// Put stores a record for a PMID, replacing any previous one.
func (s *Store) Put(pmid string, rec bibtex.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding cached record: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO pubmed (pmid, record_json, fetched_at) VALUES (?, ?, ?)`,
		pmid, data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cached record: %w", err)
	}
	return nil
}
