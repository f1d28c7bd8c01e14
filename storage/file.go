package storage

import (
	"os"
	"path/filepath"
)

// FileStore keeps save images as files under a root directory. The
// resource name is a path relative to the root.
type FileStore struct {
	Root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Root: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Root, name)
}

// Load reads the named save file.
func (s *FileStore) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, ioError("load", name, err)
	}
	return data, nil
}

// Persist writes the image to a temporary file in the same directory
// and renames it over the save, so a crash mid-write never leaves a
// half-written save behind.
func (s *FileStore) Persist(name string, data []byte) error {
	path := s.path(name)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return ioError("persist", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return ioError("persist", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return ioError("persist", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return ioError("persist", name, err)
	}
	return nil
}
