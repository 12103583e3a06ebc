package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/reelpad/reelpad/project"
)

// Drag payloads and the clipboard both carry plain JSON, so a payload
// written by one editor instance (or by a script) can be pasted into
// another.

// EncodeAsset serializes an asset for a library drag.
func EncodeAsset(a project.Asset) []byte {
	b, _ := json.Marshal(a)
	return b
}

// DecodeAsset parses a dragged asset payload.
func DecodeAsset(b []byte) (project.Asset, error) {
	var a project.Asset
	if err := json.Unmarshal(b, &a); err != nil {
		return project.Asset{}, fmt.Errorf("timeline: decode asset payload: %w", err)
	}
	if a.URL == "" && a.Type != project.ItemText {
		return project.Asset{}, fmt.Errorf("timeline: decode asset payload: missing url")
	}
	return a, nil
}

// EncodeItem serializes a clip for copy/paste.
func EncodeItem(it project.Item) []byte {
	b, _ := json.Marshal(it)
	return b
}

// DecodeItem parses a pasted clip payload and stamps it with a fresh ID
// so pasting never duplicates an existing one.
func DecodeItem(b []byte) (project.Item, error) {
	var it project.Item
	if err := json.Unmarshal(b, &it); err != nil {
		return project.Item{}, fmt.Errorf("timeline: decode item payload: %w", err)
	}
	if it.Duration <= 0 {
		return project.Item{}, fmt.Errorf("timeline: decode item payload: bad duration %v", it.Duration)
	}
	// Foreign payloads can carry geometry the editor itself would never
	// write; clamp it back into range instead of trusting it.
	if it.Duration < MinDuration {
		it.Duration = MinDuration
	}
	if it.StartTime < 0 {
		it.StartTime = 0
	}
	it.ID = "item-" + uuid.NewString()
	return it, nil
}
