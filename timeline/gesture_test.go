package timeline

import (
	"math"
	"testing"

	"github.com/reelpad/reelpad/project"
)

func track(id int, items ...project.Item) project.Track {
	for i := range items {
		items[i].TrackID = id
	}
	return project.Track{ID: id, Type: project.TrackVideo, Items: items}
}

func clip(id string, start, duration float64) project.Item {
	return project.Item{ID: id, Type: project.ItemVideo, StartTime: start, Duration: duration}
}

func tentative(t *testing.T, g *Gesture) (float64, float64, bool) {
	t.Helper()
	start, duration, valid := g.Tentative()
	return start, duration, valid
}

func TestBeginUnknownItem(t *testing.T) {
	tracks := []project.Track{track(1, clip("a", 0, 2))}
	if _, err := Begin(tracks, "nope", Move); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestMoveSnapsToNearbyEdge(t *testing.T) {
	// Dragging "b" so its raw start lands at 4.85 pulls it onto the
	// 5.0 edge of the clip on the other track.
	tracks := []project.Track{
		track(1, clip("b", 3, 1)),
		track(2, clip("x", 5, 2)),
	}
	g, err := Begin(tracks, "b", Move)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	g.Update(1.85)

	start, duration, valid := tentative(t, g)
	if start != 5.0 || duration != 1.0 {
		t.Fatalf("tentative = (%v, %v), want (5, 1)", start, duration)
	}
	if !valid {
		t.Fatal("snap landed on an invalid position")
	}
}

func TestMoveFallsBackToGrid(t *testing.T) {
	// No snap target anywhere near, so the start quantizes to the
	// 50ms grid.
	tracks := []project.Track{track(1, clip("b", 3, 2))}
	g, err := Begin(tracks, "b", Move)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	g.Update(0.07)

	start, duration, _ := tentative(t, g)
	if start != 3.05 {
		t.Fatalf("start = %v, want 3.05", start)
	}
	if duration != 2.0 {
		t.Fatalf("duration changed to %v during move", duration)
	}
}

func TestMoveClampsToZero(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 1, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(-10)

	start, _, _ := tentative(t, g)
	if start != 0 {
		t.Fatalf("start = %v, want 0", start)
	}
}

func TestMoveAcrossNeighborIsTentativelyInvalid(t *testing.T) {
	tracks := []project.Track{track(1, clip("a", 0, 2), clip("b", 3, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(-2)

	start, _, valid := tentative(t, g)
	if start != 1.0 {
		t.Fatalf("start = %v, want 1", start)
	}
	if valid {
		t.Fatal("overlapping position reported valid")
	}

	// Release reverts to the original geometry.
	gotStart, gotDuration, ok := g.End()
	if ok {
		t.Fatal("End committed an overlapping position")
	}
	if gotStart != 3 || gotDuration != 2 {
		t.Fatalf("revert = (%v, %v), want (3, 2)", gotStart, gotDuration)
	}
}

func TestMovePastNeighborCommits(t *testing.T) {
	// Jumping fully over a neighbor is allowed; only the landing spot
	// has to be free.
	tracks := []project.Track{track(1, clip("a", 0, 2), clip("b", 3, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(3.0)

	start, duration, ok := g.End()
	if !ok {
		t.Fatal("free landing spot rejected")
	}
	if start != 6 || duration != 2 {
		t.Fatalf("commit = (%v, %v), want (6, 2)", start, duration)
	}
}

func TestEdgeContactIsNotOverlap(t *testing.T) {
	tracks := []project.Track{track(1, clip("a", 0, 2), clip("b", 5, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(-3.0)

	start, _, valid := tentative(t, g)
	if start != 2.0 {
		t.Fatalf("start = %v, want 2 (snapped to a's end)", start)
	}
	if !valid {
		t.Fatal("touching edges counted as overlap")
	}
}

func TestResizeRightStopsAtNextClip(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 0, 3), clip("c", 5, 2))}
	g, _ := Begin(tracks, "b", ResizeRight)

	g.Update(10)

	start, duration, valid := tentative(t, g)
	if start != 0 || duration != 5 {
		t.Fatalf("tentative = (%v, %v), want (0, 5)", start, duration)
	}
	if !valid {
		t.Fatal("abutting resize reported invalid")
	}
}

func TestResizeRightEnforcesMinDuration(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 0, 3))}
	g, _ := Begin(tracks, "b", ResizeRight)

	g.Update(-10)

	_, duration, _ := tentative(t, g)
	if duration != MinDuration {
		t.Fatalf("duration = %v, want %v", duration, MinDuration)
	}
}

func TestResizeLeftStopsAtPreviousClip(t *testing.T) {
	tracks := []project.Track{track(1, clip("a", 0, 2), clip("b", 3, 4))}
	g, _ := Begin(tracks, "b", ResizeLeft)

	g.Update(-5)

	start, duration, valid := tentative(t, g)
	if start != 2 || duration != 5 {
		t.Fatalf("tentative = (%v, %v), want (2, 5)", start, duration)
	}
	if !valid {
		t.Fatal("abutting resize reported invalid")
	}
}

func TestResizeLeftPreservesEnd(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 2, 4))}
	g, _ := Begin(tracks, "b", ResizeLeft)

	g.Update(1.17)

	start, duration, _ := tentative(t, g)
	if got := start + duration; math.Abs(got-6) > 1e-9 {
		t.Fatalf("end moved to %v, want 6", got)
	}
	if start != 3.15 {
		t.Fatalf("start = %v, want 3.15", start)
	}
}

func TestResizeLeftEnforcesMinDuration(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 2, 4))}
	g, _ := Begin(tracks, "b", ResizeLeft)

	g.Update(10)

	start, duration, _ := tentative(t, g)
	if duration != MinDuration {
		t.Fatalf("duration = %v, want %v", duration, MinDuration)
	}
	if start != 5 {
		t.Fatalf("start = %v, want 5", start)
	}
}

func TestCrossTrackSnapDuringMove(t *testing.T) {
	// The end edge of the dragged overlay clip snaps to the end of a
	// clip on the video track below it.
	tracks := []project.Track{
		track(1, clip("base", 2, 3)),
		track(2, clip("title", 0, 1)),
	}
	g, _ := Begin(tracks, "title", Move)

	g.Update(3.9)

	start, duration, valid := tentative(t, g)
	if start != 4.0 || duration != 1.0 {
		t.Fatalf("tentative = (%v, %v), want (4, 1)", start, duration)
	}
	if !valid {
		t.Fatal("cross-track snap has no same-track collision, should be valid")
	}
}

func TestCrossTrackSnapDuringResizeRight(t *testing.T) {
	// Trimming "a" so its raw end lands at 5.15 pulls the end onto the
	// 5.0 start of the clip on the other track.
	tracks := []project.Track{
		track(1, clip("a", 0, 5)),
		track(2, clip("b", 5, 3)),
	}
	g, err := Begin(tracks, "a", ResizeRight)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	g.Update(0.15)

	start, duration, ok := g.End()
	if !ok {
		t.Fatal("commit rejected")
	}
	if start != 0 || duration != 5.0 {
		t.Fatalf("committed (%v, %v), want (0, 5)", start, duration)
	}
}

func TestUpdateIsNotCumulative(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 3, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(1)
	g.Update(1)

	start, _, _ := tentative(t, g)
	if start != 4 {
		t.Fatalf("start = %v, want 4 (deltas must not accumulate)", start)
	}
}

func TestCommitValuesAreRounded(t *testing.T) {
	tracks := []project.Track{track(1, clip("b", 0, 2))}
	g, _ := Begin(tracks, "b", Move)

	g.Update(1.0000123)

	start, _, ok := g.End()
	if !ok {
		t.Fatal("End: unexpected revert")
	}
	if start != 1.0 {
		t.Fatalf("start = %v, want 1 (grid plus rounding)", start)
	}
}
