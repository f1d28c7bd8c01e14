package storage

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLStore keeps save images as blobs in a SQLite vault.
type SQLStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLStore opens or creates a SQLite vault at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ioError("open", path, err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, ioError("open", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, ioError("open", path, err)
	}

	return &SQLStore{db: db}, nil
}

// Close closes the vault.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Load reads the named save image from the vault.
func (s *SQLStore) Load(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM saves WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ioError("load", name, fmt.Errorf("no such save"))
	}
	if err != nil {
		return nil, ioError("load", name, err)
	}
	return data, nil
}

// Persist replaces the named save image in the vault.
func (s *SQLStore) Persist(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO saves (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data`, name, data)
	if err != nil {
		return ioError("persist", name, err)
	}
	return nil
}
