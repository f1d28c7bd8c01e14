// Package manifest handles quickcode.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a quickcode.toml patching project.
type Manifest struct {
	Save    Save    `toml:"save"`
	Library Library `toml:"library"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the quickcode.toml file (set at
	// load time).
	Dir string `toml:"-"`
}

// Save names the save image and the storage backend holding it.
type Save struct {
	Resource string `toml:"resource"`
	Backend  string `toml:"backend"` // file, leveldb or sqlite
	Path     string `toml:"path"`    // backend root directory or vault file
}

// Library points at the code library for this project.
type Library struct {
	Path string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Verbose bool `toml:"verbose"`
}

// Load parses a quickcode.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "quickcode.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Save.Backend == "" {
		m.Save.Backend = "file"
	}
	if m.Save.Path == "" {
		m.Save.Path = "."
	}

	return &m, m.validate()
}

func (m *Manifest) validate() error {
	if m.Save.Resource == "" {
		return fmt.Errorf("%s: save.resource is required", filepath.Join(m.Dir, "quickcode.toml"))
	}
	switch m.Save.Backend {
	case "file", "leveldb", "sqlite":
	default:
		return fmt.Errorf("%s: unknown backend %q", filepath.Join(m.Dir, "quickcode.toml"), m.Save.Backend)
	}
	return nil
}

// FindAndLoad walks up from startDir to find a quickcode.toml file,
// then loads and returns the manifest. Returns nil if no manifest is
// found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "quickcode.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// StorePath returns the backend path resolved against the manifest
// directory.
func (m *Manifest) StorePath() string {
	if filepath.IsAbs(m.Save.Path) {
		return m.Save.Path
	}
	return filepath.Join(m.Dir, m.Save.Path)
}

// LibraryPath returns the library path resolved against the manifest
// directory, or "" when no library is configured.
func (m *Manifest) LibraryPath() string {
	if m.Library.Path == "" {
		return ""
	}
	if filepath.IsAbs(m.Library.Path) {
		return m.Library.Path
	}
	return filepath.Join(m.Dir, m.Library.Path)
}
