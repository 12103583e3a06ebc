package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/reelpad/reelpad/project"
)

// GestureType says which part of the clip the pointer grabbed.
type GestureType int

const (
	Move GestureType = iota
	ResizeLeft
	ResizeRight
)

func (g GestureType) String() string {
	switch g {
	case Move:
		return "move"
	case ResizeLeft:
		return "resize-l"
	case ResizeRight:
		return "resize-r"
	}
	return "unknown"
}

type span struct {
	start, end float64
}

// Gesture is one in-flight drag or trim of a clip. Begin snapshots the
// constraints once; Update recomputes the tentative position from the
// accumulated pointer delta; End either commits or reports that the
// result collides and must be reverted.
//
// Resizes strictly obey their neighbors: the grabbed edge can never
// cross the adjacent clip or shrink the item below MinDuration. Moves
// are free (a clip may be dragged across its neighbors to reorder) and
// are only validated at drop.
type Gesture struct {
	itemID           string
	trackID          int
	typ              GestureType
	originalStart    float64
	originalDuration float64
	minConstraint    float64
	maxConstraint    float64
	snapPoints       []float64
	collisions       []span

	tentStart    float64
	tentDuration float64
}

// Begin starts a gesture on the item with the given ID. The track set
// is snapshotted: snap points come from every clip edge on every track
// (plus 0), collision zones only from the item's own track.
func Begin(tracks []project.Track, itemID string, typ GestureType) (*Gesture, error) {
	var item project.Item
	var home *project.Track
	for i := range tracks {
		for _, it := range tracks[i].Items {
			if it.ID == itemID {
				item = it
				home = &tracks[i]
			}
		}
	}
	if home == nil {
		return nil, fmt.Errorf("timeline: begin %s: item %q not found", typ, itemID)
	}

	g := &Gesture{
		itemID:           itemID,
		trackID:          home.ID,
		typ:              typ,
		originalStart:    item.StartTime,
		originalDuration: item.Duration,
		minConstraint:    0,
		maxConstraint:    math.Inf(1),
		snapPoints:       []float64{0},
		tentStart:        item.StartTime,
		tentDuration:     item.Duration,
	}

	others := make([]project.Item, 0, len(home.Items))
	for _, it := range home.Items {
		if it.ID != itemID {
			others = append(others, it)
		}
	}
	sort.Slice(others, func(a, b int) bool { return others[a].StartTime < others[b].StartTime })

	switch typ {
	case ResizeLeft:
		// The left edge can reach back to the end of the previous clip
		// and forward until only MinDuration remains.
		for _, o := range others {
			if o.End() <= item.StartTime+collisionEps {
				g.minConstraint = o.End()
			}
		}
		g.maxConstraint = item.End() - MinDuration
	case ResizeRight:
		g.minConstraint = MinDuration
		for _, o := range others {
			if o.StartTime >= item.End()-collisionEps {
				g.maxConstraint = o.StartTime - item.StartTime
				break
			}
		}
	}

	for _, t := range tracks {
		for _, it := range t.Items {
			if it.ID == itemID {
				continue
			}
			g.snapPoints = append(g.snapPoints, it.StartTime, it.End())
			if t.ID == home.ID {
				g.collisions = append(g.collisions, span{it.StartTime, it.End()})
			}
		}
	}

	return g, nil
}

// ItemID returns the ID of the clip being dragged.
func (g *Gesture) ItemID() string { return g.itemID }

// TrackID returns the track the clip sits on.
func (g *Gesture) TrackID() int { return g.trackID }

// Type returns the gesture kind.
func (g *Gesture) Type() GestureType { return g.typ }

// Update recomputes the tentative position from the total pointer
// delta, in seconds, since Begin. It is not incremental: each call
// starts from the original geometry, so jitter never accumulates.
func (g *Gesture) Update(deltaTime float64) {
	newStart := g.originalStart
	newDuration := g.originalDuration
	originalEnd := g.originalStart + g.originalDuration

	switch g.typ {
	case Move:
		newStart = g.originalStart + deltaTime
	case ResizeRight:
		newDuration = g.originalDuration + deltaTime
	case ResizeLeft:
		newStart = g.originalStart + deltaTime
		newDuration = originalEnd - newStart
	}

	newStart, newDuration = g.clamp(newStart, newDuration, originalEnd)

	// One edge pull at most: pick the single closest snap point within
	// the threshold across every active edge, and shift by exactly that
	// delta so the clip keeps its length during a move.
	bestSnapDelta := math.Inf(1)
	edges := make([]float64, 0, 2)
	switch g.typ {
	case Move:
		edges = append(edges, newStart, newStart+newDuration)
	case ResizeLeft:
		edges = append(edges, newStart)
	case ResizeRight:
		edges = append(edges, newStart+newDuration)
	}
	for _, pt := range g.snapPoints {
		for _, edge := range edges {
			diff := pt - edge
			if math.Abs(diff) < SnapThreshold && math.Abs(diff) < math.Abs(bestSnapDelta) {
				bestSnapDelta = diff
			}
		}
	}

	if math.Abs(bestSnapDelta) < SnapThreshold {
		switch g.typ {
		case Move:
			newStart += bestSnapDelta
		case ResizeLeft:
			newStart += bestSnapDelta
			newDuration -= bestSnapDelta
		case ResizeRight:
			newDuration += bestSnapDelta
		}
	} else {
		switch g.typ {
		case Move:
			newStart = SnapToGrid(newStart)
		case ResizeLeft:
			snapped := SnapToGrid(newStart)
			newDuration -= snapped - newStart
			newStart = snapped
		case ResizeRight:
			newDuration = SnapToGrid(newDuration)
		}
	}

	// Snapping may have pushed past a neighbor; clamp again.
	newStart, newDuration = g.clamp(newStart, newDuration, originalEnd)

	g.tentStart = project.Round4(newStart)
	g.tentDuration = project.Round4(newDuration)
}

func (g *Gesture) clamp(start, duration, originalEnd float64) (float64, float64) {
	switch g.typ {
	case ResizeLeft:
		start = math.Max(g.minConstraint, math.Min(g.maxConstraint, start))
		duration = originalEnd - start
	case ResizeRight:
		duration = math.Max(g.minConstraint, math.Min(g.maxConstraint, duration))
	default:
		start = math.Max(0, start)
	}
	return start, duration
}

// Tentative returns the position the clip would land at if released
// now, and whether that position is free of collisions. The UI draws
// the clip at the tentative position regardless and flags it when
// invalid.
func (g *Gesture) Tentative() (start, duration float64, valid bool) {
	return g.tentStart, g.tentDuration, !g.overlaps(g.tentStart, g.tentDuration)
}

// End finishes the gesture. When the tentative position is free it
// returns it with ok=true; on a collision it returns the original
// geometry with ok=false and the caller leaves the clip untouched.
func (g *Gesture) End() (start, duration float64, ok bool) {
	if g.overlaps(g.tentStart, g.tentDuration) {
		return g.originalStart, g.originalDuration, false
	}
	return g.tentStart, g.tentDuration, true
}

func (g *Gesture) overlaps(start, duration float64) bool {
	end := start + duration
	for _, z := range g.collisions {
		if start < z.end-collisionEps && end > z.start+collisionEps {
			return true
		}
	}
	return false
}
