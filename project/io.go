package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the store's current project to filename as indented JSON.
func (s *Store) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("project: save %s: %w", filename, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Project()); err != nil {
		return fmt.Errorf("project: save %s: %w", filename, err)
	}
	return nil
}

// Load reads a project from filename and replaces the store's document.
func (s *Store) Load(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("project: load %s: %w", filename, err)
	}
	p, err := Decode(b)
	if err != nil {
		return fmt.Errorf("project: load %s: %w", filename, err)
	}
	s.SetProject(p)
	return nil
}

// Decode parses a project document from JSON and validates it.
func Decode(b []byte) (Project, error) {
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return Project{}, fmt.Errorf("decode project: %w", err)
	}
	if err := Validate(p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Validate rejects documents that would break the editor's assumptions:
// non-positive canvas or duration, duplicate track IDs, duplicate item
// IDs, or items whose trackId doesn't match the track holding them.
func Validate(p Project) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("validate project: bad canvas size %dx%d", p.Width, p.Height)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("validate project: bad duration %v", p.Duration)
	}
	trackIDs := make(map[int]bool, len(p.Tracks))
	itemIDs := make(map[string]bool)
	for _, t := range p.Tracks {
		if trackIDs[t.ID] {
			return fmt.Errorf("validate project: duplicate track id %d", t.ID)
		}
		trackIDs[t.ID] = true
		for _, it := range t.Items {
			if it.ID == "" {
				return fmt.Errorf("validate project: item with empty id on track %d", t.ID)
			}
			if itemIDs[it.ID] {
				return fmt.Errorf("validate project: duplicate item id %q", it.ID)
			}
			itemIDs[it.ID] = true
			if it.TrackID != t.ID {
				return fmt.Errorf("validate project: item %q has trackId %d but sits on track %d", it.ID, it.TrackID, t.ID)
			}
			if it.Duration <= 0 {
				return fmt.Errorf("validate project: item %q has duration %v", it.ID, it.Duration)
			}
			if it.StartTime < 0 {
				return fmt.Errorf("validate project: item %q starts at %v", it.ID, it.StartTime)
			}
		}
	}
	return nil
}

// ExportJSON renders the project as indented JSON, the same format Save
// writes to disk.
func (s *Store) ExportJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Project()); err != nil {
		return nil, fmt.Errorf("project: export: %w", err)
	}
	return buf.Bytes(), nil
}
