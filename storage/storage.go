// Package storage loads and persists save images by resource name.
//
// The interpreter core never touches storage directly: it is handed a
// byte buffer and returns a mutated one. The backends here supply those
// bytes — a plain directory of save files, a LevelDB vault or a SQLite
// vault — behind one interface. Storage failures are IOErrors, a
// category deliberately distinct from code errors: a save that cannot
// be read is not a broken quick code.
package storage

import (
	"fmt"
)

// Store loads and persists save images by name. Load is called exactly
// once before a run and Persist exactly once after a successful one.
type Store interface {
	// Load reads the named save image.
	Load(name string) ([]byte, error)

	// Persist replaces the named save image.
	Persist(name string, data []byte) error
}

// IOError reports a storage failure, wrapping the backend's cause.
type IOError struct {
	Op       string // "load" or "persist"
	Resource string
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Resource, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(op, resource string, err error) error {
	return &IOError{Op: op, Resource: resource, Err: err}
}
