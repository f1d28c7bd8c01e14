package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelStore keeps save images in a LevelDB vault keyed by resource
// name. LevelDB handles its own synchronization.
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore opens or creates a LevelDB vault at path. An empty
// path opens in-memory storage, which is the test configuration.
func OpenLevelStore(path string) (*LevelStore, error) {
	var db *leveldb.DB
	var err error

	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, ioError("open", path, err)
	}
	return &LevelStore{db: db}, nil
}

// Close releases the vault.
func (s *LevelStore) Close() error {
	return s.db.Close()
}

// Load reads the named save image from the vault.
func (s *LevelStore) Load(name string) ([]byte, error) {
	data, err := s.db.Get([]byte(name), nil)
	if err != nil {
		return nil, ioError("load", name, err)
	}
	return data, nil
}

// Persist replaces the named save image in the vault.
func (s *LevelStore) Persist(name string, data []byte) error {
	if err := s.db.Put([]byte(name), data, nil); err != nil {
		return ioError("persist", name, err)
	}
	return nil
}
