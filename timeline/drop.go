package timeline

import (
	"sort"

	"github.com/google/uuid"
	"github.com/reelpad/reelpad/project"
)

// DefaultDuration is how long a freshly dropped asset runs: images get
// a short hold, everything else a longer one, never below MinDuration.
func DefaultDuration(t project.ItemType) float64 {
	d := 5.0
	if t == project.ItemImage {
		d = 3.0
	}
	if d < MinDuration {
		d = MinDuration
	}
	return d
}

// ResolveDrop finds where a new clip of the given duration lands on the
// track when dropped at time at. The drop point is grid-snapped; if the
// clip would cover an existing one it slides to the end of the first
// clip it hits, and if that spot is taken too it goes after the last
// clip on the track.
func ResolveDrop(track project.Track, at, duration float64) float64 {
	if at < 0 {
		at = 0
	}
	start := SnapToGrid(at)

	items := make([]project.Item, len(track.Items))
	copy(items, track.Items)
	sort.Slice(items, func(a, b int) bool { return items[a].StartTime < items[b].StartTime })

	overlapsAny := func(s, e float64) bool {
		for _, it := range items {
			if s < it.End() && e > it.StartTime {
				return true
			}
		}
		return false
	}

	if overlapsAny(start, start+duration) {
		for _, it := range items {
			if start < it.End() && start+duration > it.StartTime {
				start = it.End()
				if overlapsAny(start, start+duration) {
					if len(items) > 0 {
						last := items[len(items)-1]
						start = last.End()
					} else {
						start = 0
					}
				}
				break
			}
		}
	}

	return project.Round4(start)
}

// NewItemFromAsset builds the clip a library drop creates: the asset's
// media as content, a grid-resolved start, the type's default duration
// and a centered default style.
func NewItemFromAsset(track project.Track, asset project.Asset, at float64) project.Item {
	duration := DefaultDuration(asset.Type)
	if asset.Duration > 0 {
		duration = asset.Duration
		if duration < MinDuration {
			duration = MinDuration
		}
	}
	start := ResolveDrop(track, at, duration)
	return project.Item{
		ID:        "item-" + uuid.NewString(),
		Type:      asset.Type,
		Content:   asset.URL,
		StartTime: start,
		Duration:  duration,
		TrackID:   track.ID,
		Name:      asset.Name,
		Style: &project.Style{
			X:        project.Float(50),
			Y:        project.Float(50),
			Scale:    project.Float(100),
			Opacity:  project.Float(1),
			Rotation: project.Float(0),
		},
	}
}

// PlaceAsset resolves a drop against the store and appends the new clip
// to the target track, returning the created item.
func PlaceAsset(store *project.Store, trackID int, asset project.Asset, at float64) (project.Item, error) {
	track, err := store.Track(trackID)
	if err != nil {
		return project.Item{}, err
	}
	item := NewItemFromAsset(track, asset, at)
	if err := store.AddItem(trackID, item); err != nil {
		return project.Item{}, err
	}
	return item, nil
}
