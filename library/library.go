// Package library reads and writes collections of named quick codes.
//
// Codes circulate as per-game lists; a library file is the canonical
// CBOR encoding of one list, so the same library always serializes to
// the same bytes regardless of who wrote it.
package library

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// ErrEntryNotFound indicates the requested code name is not in the
// library.
var ErrEntryNotFound = errors.New("entry not found")

// cborEncMode uses canonical options for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("library: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Entry is one named quick code.
type Entry struct {
	Name        string `cbor:"name"`
	Description string `cbor:"description,omitempty"`
	Code        string `cbor:"code"`
}

// Library is a per-game collection of quick codes.
type Library struct {
	Game    string  `cbor:"game"`
	Entries []Entry `cbor:"entries"`
}

// Find returns the entry with the given name.
func (l *Library) Find(name string) (*Entry, error) {
	for i := range l.Entries {
		if l.Entries[i].Name == name {
			return &l.Entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
}

// Marshal serializes a Library to canonical CBOR bytes.
func Marshal(l *Library) ([]byte, error) {
	return cborEncMode.Marshal(l)
}

// Unmarshal deserializes a Library from CBOR bytes.
func Unmarshal(data []byte) (*Library, error) {
	var l Library
	if err := cbor.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("library: unmarshal: %w", err)
	}
	return &l, nil
}

// ReadFile loads a library file.
func ReadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("library: read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// WriteFile writes a library file.
func WriteFile(path string, l *Library) error {
	data, err := Marshal(l)
	if err != nil {
		return fmt.Errorf("library: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("library: write %s: %w", path, err)
	}
	return nil
}
