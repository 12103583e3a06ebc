package project

import (
	"strings"
	"testing"
)

func TestUpdateItemMergesStyle(t *testing.T) {
	s := NewStore(DefaultProject(), nil)

	if err := s.UpdateItem("text-1", Patch{Style: &Style{X: Float(25)}}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	it, ok := s.Item("text-1")
	if !ok {
		t.Fatal("text-1 missing after update")
	}
	if it.Style == nil || it.Style.X == nil || *it.Style.X != 25 {
		t.Fatalf("expected x=25, got %+v", it.Style)
	}
	if it.Style.Color == nil || *it.Style.Color != "#ffffff" {
		t.Fatalf("style merge dropped color: %+v", it.Style)
	}
	if it.Style.FontSize == nil || *it.Style.FontSize != 48 {
		t.Fatalf("style merge dropped fontSize: %+v", it.Style)
	}
}

func TestUpdateItemRoundsTimes(t *testing.T) {
	s := NewStore(DefaultProject(), nil)

	if err := s.UpdateItem("clip-1", Patch{StartTime: Float(1.00001234), Duration: Float(2.99999)}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	it, _ := s.Item("clip-1")
	if it.StartTime != 1.0 {
		t.Errorf("startTime = %v, want 1", it.StartTime)
	}
	if it.Duration != 3.0 {
		t.Errorf("duration = %v, want 3", it.Duration)
	}
}

func TestDeleteItemClearsSelection(t *testing.T) {
	s := NewStore(DefaultProject(), nil)
	s.Select("clip-1")

	if err := s.DeleteItem("clip-1"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, ok := s.Item("clip-1"); ok {
		t.Fatal("clip-1 still present after delete")
	}
	if id := s.SelectedID(); id != "" {
		t.Fatalf("selection not cleared, still %q", id)
	}
}

func TestDeleteItemKeepsOtherSelection(t *testing.T) {
	s := NewStore(DefaultProject(), nil)
	s.Select("text-1")

	if err := s.DeleteItem("clip-1"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if id := s.SelectedID(); id != "text-1" {
		t.Fatalf("selection changed to %q", id)
	}
}

func TestAddAssetPrepends(t *testing.T) {
	s := NewStore(DefaultProject(), DefaultAssets())
	s.AddAsset(Asset{ID: "asset-new", Type: ItemImage, Name: "New"})

	assets := s.Assets()
	if len(assets) != 5 {
		t.Fatalf("len(assets) = %d, want 5", len(assets))
	}
	if assets[0].ID != "asset-new" {
		t.Fatalf("new asset not first, got %q", assets[0].ID)
	}
}

func TestReplaceTrackItemsForcesTrackID(t *testing.T) {
	s := NewStore(DefaultProject(), nil)

	items := []Item{{ID: "a", Type: ItemVideo, StartTime: 0, Duration: 2, TrackID: 99}}
	if err := s.ReplaceTrackItems(1, items); err != nil {
		t.Fatalf("ReplaceTrackItems: %v", err)
	}
	tr, err := s.Track(1)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if len(tr.Items) != 1 || tr.Items[0].TrackID != 1 {
		t.Fatalf("items = %+v", tr.Items)
	}
}

func TestProjectReturnsCopy(t *testing.T) {
	s := NewStore(DefaultProject(), nil)

	p := s.Project()
	p.Tracks[0].Items[0].StartTime = 99
	*p.Tracks[0].Items[0].Style.Opacity = 0

	it, _ := s.Item("clip-1")
	if it.StartTime != 0 {
		t.Fatal("mutating snapshot changed the store")
	}
	if *it.Style.Opacity != 1 {
		t.Fatal("mutating snapshot style changed the store")
	}
}

func TestSetProjectClearsSelection(t *testing.T) {
	s := NewStore(DefaultProject(), nil)
	s.Select("clip-1")
	s.SetProject(DefaultProject())
	if id := s.SelectedID(); id != "" {
		t.Fatalf("selection survived SetProject: %q", id)
	}
}

func TestValidate(t *testing.T) {
	base := DefaultProject()

	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr string
	}{
		{
			name:   "default project is valid",
			mutate: func(p *Project) {},
		},
		{
			name:    "zero duration",
			mutate:  func(p *Project) { p.Duration = 0 },
			wantErr: "bad duration",
		},
		{
			name:    "zero width",
			mutate:  func(p *Project) { p.Width = 0 },
			wantErr: "bad canvas size",
		},
		{
			name:    "duplicate track id",
			mutate:  func(p *Project) { p.Tracks[1].ID = 1 },
			wantErr: "duplicate track id",
		},
		{
			name: "duplicate item id",
			mutate: func(p *Project) {
				it := p.Tracks[0].Items[0]
				it.TrackID = 3
				p.Tracks[2].Items = append(p.Tracks[2].Items, it)
			},
			wantErr: "duplicate item id",
		},
		{
			name:    "item on wrong track",
			mutate:  func(p *Project) { p.Tracks[0].Items[0].TrackID = 2 },
			wantErr: "has trackId",
		},
		{
			name:    "zero duration item",
			mutate:  func(p *Project) { p.Tracks[0].Items[0].Duration = 0 },
			wantErr: "has duration",
		},
		{
			name:    "negative start",
			mutate:  func(p *Project) { p.Tracks[0].Items[0].StartTime = -1 },
			wantErr: "starts at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := cloneProject(base)
			tt.mutate(&p)
			err := Validate(p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExportDecodeRoundTrip(t *testing.T) {
	s := NewStore(DefaultProject(), nil)

	b, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(p.Tracks) != 3 {
		t.Fatalf("len(tracks) = %d, want 3", len(p.Tracks))
	}
	got := p.Tracks[1].Items[0]
	if got.ID != "text-1" || got.StartTime != 0.5 || got.Duration != 4 {
		t.Fatalf("text item mangled: %+v", got)
	}
	if got.Style == nil || got.Style.FontSize == nil || *got.Style.FontSize != 48 {
		t.Fatalf("style mangled: %+v", got.Style)
	}
	if got.Style.BackgroundColor != nil {
		t.Fatal("unset style field survived round trip")
	}
}
