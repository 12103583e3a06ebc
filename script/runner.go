// Package script runs tengo automation scripts against the open
// project. Scripts are the seam for agents and batch edits: they see
// the same placement and collision rules the pointer gestures use.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/reelpad/reelpad/clock"
	"github.com/reelpad/reelpad/project"
	"github.com/reelpad/reelpad/timeline"
)

type Runner struct {
	store *project.Store
	clk   *clock.Clock
}

func NewRunner(store *project.Store, clk *clock.Clock) *Runner {
	return &Runner{store: store, clk: clk}
}

// RunFile loads and runs a script from disk.
func (r *Runner) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: read %s: %w", path, err)
	}
	return r.Run(filepath.Base(path), src)
}

// RunEmbedded runs one of the scripts bundled with the editor.
func (r *Runner) RunEmbedded(name string) error {
	src, err := LoadEmbedded(name)
	if err != nil {
		return err
	}
	return r.Run(name, src)
}

// Run compiles and executes a script. The script gets an `editor`
// global exposing the project operations plus the tengo stdlib.
func (r *Runner) Run(name string, src []byte) error {
	s := tengo.NewScript(src)
	if err := s.Add("editor", r.engine()); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	return nil
}

func (r *Runner) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["add_clip"] = &tengo.UserFunction{Name: "add_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		trackID := objectAsInt(args[0])
		typ := project.ItemType(objectAsString(args[1]))
		content := objectAsString(args[2])
		name := objectAsString(args[3])
		at := objectAsFloat(args[4])

		asset := project.Asset{Type: typ, URL: content, Name: name}
		item, err := timeline.PlaceAsset(r.store, trackID, asset, at)
		if err != nil {
			return nil, err
		}
		return &tengo.String{Value: item.ID}, nil
	}}

	values["move_clip"] = &tengo.UserFunction{Name: "move_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		id := objectAsString(args[0])
		start := timeline.SnapToGrid(objectAsFloat(args[1]))
		if start < 0 {
			start = 0
		}
		if r.applyGeometry(id, &start, nil) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["resize_clip"] = &tengo.UserFunction{Name: "resize_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		id := objectAsString(args[0])
		duration := timeline.SnapToGrid(objectAsFloat(args[1]))
		if duration < timeline.MinDuration {
			duration = timeline.MinDuration
		}
		if r.applyGeometry(id, nil, &duration) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["remove_clip"] = &tengo.UserFunction{Name: "remove_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if err := r.store.DeleteItem(objectAsString(args[0])); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["clips"] = &tengo.UserFunction{Name: "clips", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		track, err := r.store.Track(objectAsInt(args[0]))
		if err != nil {
			return nil, err
		}
		items := track.Items
		sort.Slice(items, func(a, b int) bool { return items[a].StartTime < items[b].StartTime })
		arr := make([]tengo.Object, len(items))
		for i, it := range items {
			arr[i] = &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"id":       &tengo.String{Value: it.ID},
				"type":     &tengo.String{Value: string(it.Type)},
				"name":     &tengo.String{Value: it.Name},
				"content":  &tengo.String{Value: it.Content},
				"start":    &tengo.Float{Value: it.StartTime},
				"duration": &tengo.Float{Value: it.Duration},
			}}
		}
		return &tengo.Array{Value: arr}, nil
	}}

	values["set_text"] = &tengo.UserFunction{Name: "set_text", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		content := objectAsString(args[1])
		if err := r.store.UpdateItem(objectAsString(args[0]), project.Patch{Content: &content}); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["duration"] = &tengo.UserFunction{Name: "duration", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: r.store.Duration()}, nil
	}}

	values["playhead"] = &tengo.UserFunction{Name: "playhead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: r.clk.Now()}, nil
	}}

	values["seek"] = &tengo.UserFunction{Name: "seek", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		r.clk.Seek(objectAsFloat(args[0]))
		return tengo.UndefinedValue, nil
	}}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.clk.Play()
		return tengo.UndefinedValue, nil
	}}

	values["pause"] = &tengo.UserFunction{Name: "pause", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.clk.Pause()
		return tengo.UndefinedValue, nil
	}}

	values["select_clip"] = &tengo.UserFunction{Name: "select_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		r.store.Select(objectAsString(args[0]))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// applyGeometry writes a new start and/or duration for a clip if the
// result does not collide with anything else on its track. It enforces
// the same edge-contact tolerance as pointer gestures, so a scripted
// move obeys identical rules.
func (r *Runner) applyGeometry(id string, start, duration *float64) bool {
	item, ok := r.store.Item(id)
	if !ok {
		return false
	}
	newStart := item.StartTime
	newDuration := item.Duration
	if start != nil {
		newStart = *start
	}
	if duration != nil {
		newDuration = *duration
	}

	track, err := r.store.Track(item.TrackID)
	if err != nil {
		return false
	}
	for _, other := range track.Items {
		if other.ID == id {
			continue
		}
		if timeline.Overlaps(newStart, newStart+newDuration, other) {
			return false
		}
	}

	patch := project.Patch{}
	if start != nil {
		patch.StartTime = start
	}
	if duration != nil {
		patch.Duration = duration
	}
	return r.store.UpdateItem(id, patch) == nil
}

func objectAsString(o tengo.Object) string {
	if s, ok := tengo.ToString(o); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func objectAsFloat(o tengo.Object) float64 {
	if f, ok := tengo.ToFloat64(o); ok {
		return f
	}
	return 0
}

func objectAsInt(o tengo.Object) int {
	if n, ok := tengo.ToInt(o); ok {
		return n
	}
	return 0
}
