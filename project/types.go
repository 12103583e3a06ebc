package project

import "math"

// ItemType discriminates what a timeline item renders as.
type ItemType string

const (
	ItemVideo ItemType = "video"
	ItemImage ItemType = "image"
	ItemText  ItemType = "text"
	ItemAudio ItemType = "audio"
)

// TrackType constrains which items a track is meant to hold.
type TrackType string

const (
	TrackVideo   TrackType = "video"
	TrackAudio   TrackType = "audio"
	TrackOverlay TrackType = "overlay"
)

// Style holds the visual properties of an item. All fields are optional;
// a nil pointer means the property was never set and renderers fall back
// to their defaults. x/y/width/height/scale are percentages, opacity is
// 0..1, rotation is degrees.
type Style struct {
	FontSize        *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color           *string  `json:"color,omitempty" yaml:"color,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	X               *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y               *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width           *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height          *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Rotation        *float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale           *float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Item is a single clip on a track. Content is a media path/URL for
// video, image and audio items, or the literal text for text items.
// StartTime and Duration are seconds.
type Item struct {
	ID        string   `json:"id" yaml:"id"`
	Type      ItemType `json:"type" yaml:"type"`
	Content   string   `json:"content" yaml:"content"`
	StartTime float64  `json:"startTime" yaml:"startTime"`
	Duration  float64  `json:"duration" yaml:"duration"`
	TrackID   int      `json:"trackId" yaml:"trackId"`
	Name      string   `json:"name" yaml:"name"`
	Style     *Style   `json:"style,omitempty" yaml:"style,omitempty"`
}

// End returns the item's end time in seconds.
func (i Item) End() float64 {
	return i.StartTime + i.Duration
}

// Track is an ordered lane of items. Lower IDs composite first, so the
// track with the smallest ID is the bottom layer of the preview.
type Track struct {
	ID    int       `json:"id" yaml:"id"`
	Type  TrackType `json:"type" yaml:"type"`
	Name  string    `json:"name" yaml:"name"`
	Items []Item    `json:"items" yaml:"items"`
}

// Project is the whole editable document.
type Project struct {
	Name     string  `json:"name" yaml:"name"`
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	Duration float64 `json:"duration" yaml:"duration"`
	Tracks   []Track `json:"tracks" yaml:"tracks"`
}

// Asset is an importable piece of media shown in the library panel.
type Asset struct {
	ID        string   `json:"id" yaml:"id"`
	Type      ItemType `json:"type" yaml:"type"`
	URL       string   `json:"url" yaml:"url"`
	Name      string   `json:"name" yaml:"name"`
	Thumbnail string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Duration  float64  `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Round4 rounds t to 4 decimal places. Every time value written back
// into the project goes through this so repeated drags don't accumulate
// float noise.
func Round4(t float64) float64 {
	return math.Round(t*10000) / 10000
}

// Float returns a pointer to v, for building Style literals.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s, for building Style literals.
func String(s string) *string { return &s }

func (s *Style) clone() *Style {
	if s == nil {
		return nil
	}
	c := &Style{}
	c.merge(s)
	return c
}

// merge copies every non-nil field of patch into s.
func (s *Style) merge(patch *Style) {
	if patch == nil {
		return
	}
	if patch.FontSize != nil {
		v := *patch.FontSize
		s.FontSize = &v
	}
	if patch.Color != nil {
		v := *patch.Color
		s.Color = &v
	}
	if patch.BackgroundColor != nil {
		v := *patch.BackgroundColor
		s.BackgroundColor = &v
	}
	if patch.X != nil {
		v := *patch.X
		s.X = &v
	}
	if patch.Y != nil {
		v := *patch.Y
		s.Y = &v
	}
	if patch.Width != nil {
		v := *patch.Width
		s.Width = &v
	}
	if patch.Height != nil {
		v := *patch.Height
		s.Height = &v
	}
	if patch.Opacity != nil {
		v := *patch.Opacity
		s.Opacity = &v
	}
	if patch.Rotation != nil {
		v := *patch.Rotation
		s.Rotation = &v
	}
	if patch.Scale != nil {
		v := *patch.Scale
		s.Scale = &v
	}
}
