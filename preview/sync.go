// Package preview composites the project at the playhead and keeps
// natively clocked media (audio players, decoded video) in step with
// the editor's own clock.
package preview

import (
	"math"
	"sync"

	"github.com/reelpad/reelpad/project"
)

const (
	// playingDrift is how far a playing media stream may run ahead of
	// or behind the editor clock before it gets hard-seeked. Correcting
	// smaller drifts every frame would fight the stream's own clock and
	// stutter.
	playingDrift = 0.3
	// pausedDrift is the tight tolerance used while paused, so
	// scrubbing lands on the exact frame.
	pausedDrift = 0.05
)

// Media is a natively clocked stream the synchronizer steers. Position
// and SetPosition are in seconds within the stream.
type Media interface {
	Position() float64
	SetPosition(seconds float64) error
	Play()
	Pause()
	IsPlaying() bool
}

// ActiveItems returns the items under the playhead, ordered bottom-up
// by track ID.
func ActiveItems(tracks []project.Track, now float64) []project.Item {
	var active []project.Item
	for _, t := range tracks {
		for _, it := range t.Items {
			if now >= it.StartTime && now < it.End() {
				active = append(active, it)
			}
		}
	}
	for i := 1; i < len(active); i++ {
		for j := i; j > 0 && active[j].TrackID < active[j-1].TrackID; j-- {
			active[j], active[j-1] = active[j-1], active[j]
		}
	}
	return active
}

// Synchronizer holds the media streams registered for timeline items
// and reconciles them against the playhead every frame.
type Synchronizer struct {
	mu    sync.Mutex
	media map[string]Media
}

func NewSynchronizer() *Synchronizer {
	return &Synchronizer{media: make(map[string]Media)}
}

// Register attaches a stream to a timeline item. Call Ready once the
// stream is actually usable.
func (s *Synchronizer) Register(itemID string, m Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[itemID] = m
}

// Unregister detaches and pauses the stream for an item, e.g. when the
// item is deleted.
func (s *Synchronizer) Unregister(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.media[itemID]; ok {
		m.Pause()
		delete(s.media, itemID)
	}
}

// Ready aligns a freshly loaded stream with the playhead so the first
// frame shown is already the right one, and starts it if the editor is
// playing.
func (s *Synchronizer) Ready(itemID string, item project.Item, now float64, playing bool) {
	s.mu.Lock()
	m, ok := s.media[itemID]
	s.mu.Unlock()
	if !ok {
		return
	}
	target := now - item.StartTime
	if target < 0 {
		target = 0
	}
	_ = m.SetPosition(target)
	if playing {
		m.Play()
	}
}

// Sync reconciles every registered stream with the playhead. Streams
// whose item is under the playhead follow the editor's play state and
// get drift-corrected; streams whose item is not active are paused.
func (s *Synchronizer) Sync(tracks []project.Track, now float64, playing bool) {
	active := make(map[string]project.Item)
	for _, it := range ActiveItems(tracks, now) {
		active[it.ID] = it
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.media {
		it, ok := active[id]
		if !ok {
			if m.IsPlaying() {
				m.Pause()
			}
			continue
		}

		target := now - it.StartTime
		if target < 0 {
			target = 0
		}

		if playing {
			if !m.IsPlaying() {
				m.Play()
			}
			if math.Abs(m.Position()-target) > playingDrift {
				_ = m.SetPosition(target)
			}
		} else {
			if m.IsPlaying() {
				m.Pause()
			}
			if math.Abs(m.Position()-target) > pausedDrift {
				_ = m.SetPosition(target)
			}
		}
	}
}

// PauseAll stops every registered stream, used when playback reaches
// the end of the project.
func (s *Synchronizer) PauseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.media {
		m.Pause()
	}
}
