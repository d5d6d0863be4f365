// Package manifest handles corral.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up in a project directory
const FileName = "corral.toml"

// Manifest represents a corral.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Run     Run     `toml:"run"`

	// Dir is the directory containing the corral.toml file (set at
	// load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Run configures how the program executes.
type Run struct {
	// Entry is the source file assembled and run, relative to Dir.
	Entry string `toml:"entry"`
	// StepLimit bounds the run; 0 means unbounded.
	StepLimit int64 `toml:"step-limit"`
	// Seed fixes the pseudo-random sequence; 0 seeds from the clock.
	Seed int64 `toml:"seed"`
}

// Load parses a corral.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	m.Dir = dir

	if m.Run.Entry == "" {
		return nil, fmt.Errorf("%s: run.entry is required", path)
	}
	return &m, nil
}

// EntryPath resolves the entry source file against the manifest dir.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Dir, m.Run.Entry)
}
