// Package timeline implements the editing logic of the clip lane view:
// pixel/time mapping, drag and resize gestures with magnetic snapping,
// and placement of newly dropped media.
package timeline

import (
	"math"

	"github.com/reelpad/reelpad/project"
)

const (
	// Scale is the zoom of the lane view in pixels per second.
	Scale = 50.0
	// SnapGrid is the quantization step applied when no magnetic snap
	// target is near, in seconds.
	SnapGrid = 0.05
	// SnapThreshold is how close an edge must be to a snap point before
	// it gets pulled onto it, in seconds.
	SnapThreshold = 0.2
	// MinDuration is the shortest a clip can be trimmed to, in seconds.
	MinDuration = 1.0

	// collisionEps lets clips share an edge without counting as
	// overlapping.
	collisionEps = 0.001
)

// TimeToPx converts a time in seconds to a horizontal pixel offset.
func TimeToPx(t float64) float64 {
	return t * Scale
}

// PxToTime converts a horizontal pixel offset to seconds, clamped so a
// click left of the origin lands at 0.
func PxToTime(x float64) float64 {
	t := x / Scale
	if t < 0 {
		return 0
	}
	return t
}

// SnapToGrid quantizes t to the nearest grid step.
func SnapToGrid(t float64) float64 {
	return math.Round(t/SnapGrid) * SnapGrid
}

// ContentWidth is the scrollable width of the lane view in pixels. It
// leaves ten seconds of headroom after the project and never shrinks
// below a minute so short projects still have room to drop into.
func ContentWidth(duration float64) float64 {
	secs := math.Max(duration+10, 60)
	return secs * Scale
}

// Overlaps reports whether the span [start, end) collides with item,
// tolerating edge contact within collisionEps.
func Overlaps(start, end float64, item project.Item) bool {
	return start < item.End()-collisionEps && end > item.StartTime+collisionEps
}
