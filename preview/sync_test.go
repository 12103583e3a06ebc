package preview

import (
	"testing"

	"github.com/reelpad/reelpad/project"
)

type fakeMedia struct {
	pos     float64
	playing bool
	seeks   int
}

func (f *fakeMedia) Position() float64 { return f.pos }
func (f *fakeMedia) SetPosition(s float64) error {
	f.pos = s
	f.seeks++
	return nil
}
func (f *fakeMedia) Play()           { f.playing = true }
func (f *fakeMedia) Pause()          { f.playing = false }
func (f *fakeMedia) IsPlaying() bool { return f.playing }

func tracksWithAudio(start, duration float64) []project.Track {
	return []project.Track{
		{ID: 3, Type: project.TrackAudio, Items: []project.Item{
			{ID: "song", Type: project.ItemAudio, StartTime: start, Duration: duration, TrackID: 3},
		}},
	}
}

func TestActiveItemsOrderedByTrack(t *testing.T) {
	tracks := []project.Track{
		{ID: 2, Items: []project.Item{{ID: "top", StartTime: 0, Duration: 5, TrackID: 2}}},
		{ID: 1, Items: []project.Item{{ID: "bottom", StartTime: 0, Duration: 5, TrackID: 1}}},
	}

	active := ActiveItems(tracks, 1)
	if len(active) != 2 {
		t.Fatalf("len = %d, want 2", len(active))
	}
	if active[0].ID != "bottom" || active[1].ID != "top" {
		t.Fatalf("order = %s, %s; want bottom, top", active[0].ID, active[1].ID)
	}
}

func TestActiveItemsEndIsExclusive(t *testing.T) {
	tracks := tracksWithAudio(1, 4)

	if got := ActiveItems(tracks, 5); len(got) != 0 {
		t.Fatalf("item active at its own end time: %+v", got)
	}
	if got := ActiveItems(tracks, 1); len(got) != 1 {
		t.Fatal("item not active at its start time")
	}
}

func TestSyncResumesAndToleratesSmallDrift(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{pos: 1.8}
	s.Register("song", m)

	// Playhead at 4, clip starts at 2: target 2. Media at 1.8 is only
	// 0.2 off, inside the playing deadband, so no seek.
	s.Sync(tracksWithAudio(2, 10), 4, true)

	if !m.playing {
		t.Fatal("media not resumed while editor playing")
	}
	if m.seeks != 0 {
		t.Fatalf("seeked %d times inside the deadband", m.seeks)
	}
}

func TestSyncCorrectsLargeDrift(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{pos: 5, playing: true}
	s.Register("song", m)

	s.Sync(tracksWithAudio(2, 10), 4, true)

	if m.seeks != 1 || m.pos != 2 {
		t.Fatalf("seeks=%d pos=%v, want one seek to 2", m.seeks, m.pos)
	}
}

func TestSyncPausedUsesTightDeadband(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{pos: 2.1, playing: true}
	s.Register("song", m)

	s.Sync(tracksWithAudio(2, 10), 4, false)

	if m.playing {
		t.Fatal("media kept playing while editor paused")
	}
	if m.seeks != 1 || m.pos != 2 {
		t.Fatalf("seeks=%d pos=%v, want exact sync while paused", m.seeks, m.pos)
	}

	// Within the paused deadband nothing moves.
	m.pos = 2.04
	m.seeks = 0
	s.Sync(tracksWithAudio(2, 10), 4, false)
	if m.seeks != 0 {
		t.Fatalf("seeked %d times inside the paused deadband", m.seeks)
	}
}

func TestSyncPausesInactiveStreams(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{playing: true}
	s.Register("song", m)

	// Playhead before the clip starts.
	s.Sync(tracksWithAudio(5, 5), 1, true)

	if m.playing {
		t.Fatal("stream kept playing outside its item's span")
	}
}

func TestReadyAlignsAndStarts(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{}
	s.Register("song", m)
	item := project.Item{ID: "song", StartTime: 2, Duration: 10}

	s.Ready("song", item, 6, true)

	if m.pos != 4 {
		t.Fatalf("pos = %v, want 4", m.pos)
	}
	if !m.playing {
		t.Fatal("ready did not start playback while editor playing")
	}

	m2 := &fakeMedia{}
	s.Register("song2", m2)
	s.Ready("song2", project.Item{ID: "song2", StartTime: 2, Duration: 10}, 6, false)
	if m2.playing {
		t.Fatal("ready started playback while editor paused")
	}
}

func TestUnregisterPauses(t *testing.T) {
	s := NewSynchronizer()
	m := &fakeMedia{playing: true}
	s.Register("song", m)

	s.Unregister("song")

	if m.playing {
		t.Fatal("unregister left the stream playing")
	}
	// A later sync must not touch it again.
	s.Sync(tracksWithAudio(0, 10), 1, true)
	if m.playing {
		t.Fatal("unregistered stream resurrected by sync")
	}
}

func TestPauseAll(t *testing.T) {
	s := NewSynchronizer()
	a := &fakeMedia{playing: true}
	b := &fakeMedia{playing: true}
	s.Register("a", a)
	s.Register("b", b)

	s.PauseAll()

	if a.playing || b.playing {
		t.Fatal("PauseAll left a stream playing")
	}
}
