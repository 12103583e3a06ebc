package project

import (
	"fmt"
	"sync"
)

// Patch describes a partial update to an item. Nil fields are left
// untouched; Style is merged field-by-field rather than replaced, so a
// patch that only sets Style.X keeps the item's existing colors.
type Patch struct {
	Name      *string
	Content   *string
	StartTime *float64
	Duration  *float64
	TrackID   *int
	Style     *Style
}

// Store owns the project document and the asset library, and serializes
// every mutation behind a mutex so the render loop, the script runtime
// and the file watcher can all touch it. Reads hand out deep copies;
// callers never hold references into the store's own slices.
type Store struct {
	mu       sync.Mutex
	project  Project
	assets   []Asset
	selected string
	version  uint64
}

// NewStore wraps an initial project and asset set.
func NewStore(p Project, assets []Asset) *Store {
	s := &Store{}
	s.setProjectLocked(p)
	s.assets = append(s.assets, assets...)
	return s
}

// Version increments on every mutation. The UI compares it against the
// value it last rendered to know when cached geometry is stale.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Project returns a deep copy of the document.
func (s *Store) Project() Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProject(s.project)
}

// SetProject replaces the whole document, e.g. after loading a file.
// Selection is cleared because the old item IDs may no longer exist.
func (s *Store) SetProject(p Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setProjectLocked(p)
	s.selected = ""
	s.version++
}

func (s *Store) setProjectLocked(p Project) {
	s.project = cloneProject(p)
	for i := range s.project.Tracks {
		if s.project.Tracks[i].Items == nil {
			s.project.Tracks[i].Items = []Item{}
		}
	}
}

// Duration returns the project duration in seconds.
func (s *Store) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Duration
}

// Tracks returns a deep copy of all tracks.
func (s *Store) Tracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTracks(s.project.Tracks)
}

// Track returns a deep copy of the track with the given ID.
func (s *Store) Track(trackID int) (Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.project.Tracks {
		if t.ID == trackID {
			return cloneTrack(t), nil
		}
	}
	return Track{}, fmt.Errorf("track %d not found", trackID)
}

// ReplaceTrackItems swaps out the full item slice of one track. This is
// the commit path for drag gestures, which compute the final layout of
// a track and write it back in one shot.
func (s *Store) ReplaceTrackItems(trackID int, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.project.Tracks {
		if s.project.Tracks[i].ID != trackID {
			continue
		}
		next := make([]Item, len(items))
		for j, it := range items {
			it.TrackID = trackID
			it.Style = it.Style.clone()
			next[j] = it
		}
		s.project.Tracks[i].Items = next
		s.version++
		return nil
	}
	return fmt.Errorf("replace items: track %d not found", trackID)
}

// AddItem appends an item to a track.
func (s *Store) AddItem(trackID int, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.project.Tracks {
		if s.project.Tracks[i].ID != trackID {
			continue
		}
		item.TrackID = trackID
		item.Style = item.Style.clone()
		s.project.Tracks[i].Items = append(s.project.Tracks[i].Items, item)
		s.version++
		return nil
	}
	return fmt.Errorf("add item: track %d not found", trackID)
}

// UpdateItem applies a partial update to the item with the given ID.
func (s *Store) UpdateItem(id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.project.Tracks {
		items := s.project.Tracks[i].Items
		for j := range items {
			if items[j].ID != id {
				continue
			}
			it := &items[j]
			if patch.Name != nil {
				it.Name = *patch.Name
			}
			if patch.Content != nil {
				it.Content = *patch.Content
			}
			if patch.StartTime != nil {
				it.StartTime = Round4(*patch.StartTime)
			}
			if patch.Duration != nil {
				it.Duration = Round4(*patch.Duration)
			}
			if patch.TrackID != nil {
				it.TrackID = *patch.TrackID
			}
			if patch.Style != nil {
				if it.Style == nil {
					it.Style = &Style{}
				}
				it.Style.merge(patch.Style)
			}
			s.version++
			return nil
		}
	}
	return fmt.Errorf("update item: %q not found", id)
}

// DeleteItem removes the item with the given ID from whichever track
// holds it, clearing the selection if it pointed at that item.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.project.Tracks {
		items := s.project.Tracks[i].Items
		for j := range items {
			if items[j].ID != id {
				continue
			}
			s.project.Tracks[i].Items = append(items[:j:j], items[j+1:]...)
			if s.selected == id {
				s.selected = ""
			}
			s.version++
			return nil
		}
	}
	return fmt.Errorf("delete item: %q not found", id)
}

// Item looks up an item by ID anywhere in the project.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.project.Tracks {
		for _, it := range t.Items {
			if it.ID == id {
				return cloneItem(it), true
			}
		}
	}
	return Item{}, false
}

// Select marks an item as selected. An empty ID clears the selection.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Selected returns the currently selected item, if any.
func (s *Store) Selected() (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return Item{}, false
	}
	for _, t := range s.project.Tracks {
		for _, it := range t.Items {
			if it.ID == s.selected {
				return cloneItem(it), true
			}
		}
	}
	return Item{}, false
}

// SelectedID returns the selected item's ID, or "".
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Assets returns a copy of the asset library, newest first.
func (s *Store) Assets() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// AddAsset prepends a new asset so fresh imports show at the top of the
// library panel.
func (s *Store) AddAsset(a Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append([]Asset{a}, s.assets...)
	s.version++
}

// Asset looks up an asset by ID.
func (s *Store) Asset(id string) (Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

func cloneProject(p Project) Project {
	p.Tracks = cloneTracks(p.Tracks)
	return p
}

func cloneTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = cloneTrack(t)
	}
	return out
}

func cloneTrack(t Track) Track {
	items := make([]Item, len(t.Items))
	for i, it := range t.Items {
		items[i] = cloneItem(it)
	}
	t.Items = items
	return t
}

func cloneItem(it Item) Item {
	it.Style = it.Style.clone()
	return it
}
