package audiohash

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Manifest is the list of final filenames produced by one run. Entries are
// written in ascending lexicographic order regardless of insertion order.
type Manifest struct {
	entries []string
}

// Add records a filename for the next write.
func (m *Manifest) Add(name string) {
	m.entries = append(m.entries, name)
}

// Len returns the number of recorded entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns the recorded filenames, sorted.
func (m *Manifest) Entries() []string {
	sort.Strings(m.entries)
	return m.entries
}

// WriteFile writes the sorted entries as an indented JSON array. The file is
// written to a temp path first and renamed into place, so readers never see
// a partial manifest.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest previously written by WriteFile.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &Manifest{entries: entries}, nil
}
