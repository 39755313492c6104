// Package session persists viewer state between runs: the last opened
// file and page offset, recently opened files and window geometry.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const maxRecentFiles = 10

// Geometry is the last known window layout.
type Geometry struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	SplitPos int `json:"splitPos"`
}

// State is everything the viewer restores on startup.
type State struct {
	LastDirectory string   `json:"lastDirectory,omitempty"`
	LastFile      string   `json:"lastFile,omitempty"`
	LastOffset    int64    `json:"lastOffset"`
	RecentFiles   []string `json:"recentFiles,omitempty"`
	Geometry      Geometry `json:"geometry"`
}

// Touch records path as the most recently opened file. The recents list is
// deduplicated, most recent first, capped at maxRecentFiles. Opening a new
// file forgets the old offset.
func (s *State) Touch(path string) {
	s.LastFile = path
	s.LastDirectory = filepath.Dir(path)
	s.LastOffset = 0

	recents := make([]string, 0, len(s.RecentFiles)+1)
	recents = append(recents, path)
	for _, f := range s.RecentFiles {
		if f == path {
			continue
		}
		recents = append(recents, f)
	}
	if len(recents) > maxRecentFiles {
		recents = recents[:maxRecentFiles]
	}
	s.RecentFiles = recents
}

// RememberOffset snapshots the current page offset for session restore.
func (s *State) RememberOffset(offset int64) {
	s.LastOffset = offset
}

// Store reads and writes State as JSON at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pview", "session.json"), nil
}

// Load reads the saved state. A missing or unreadable file yields a zero
// State so a broken session never blocks startup.
func (s *Store) Load() State {
	var state State
	data, err := os.ReadFile(s.path)
	if err != nil {
		return State{}
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}
	}
	return state
}

// Save writes the state atomically via a temp file rename.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
