package project

// DefaultProject is the document a fresh session opens with: a video
// track holding one sample clip, a text overlay, and an empty music
// track.
func DefaultProject() Project {
	return Project{
		Name:     "Untitled Project",
		Width:    1280,
		Height:   720,
		Duration: 15,
		Tracks: []Track{
			{
				ID:   1,
				Type: TrackVideo,
				Name: "Main Track",
				Items: []Item{
					{
						ID:        "clip-1",
						Type:      ItemVideo,
						Content:   "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
						StartTime: 0,
						Duration:  5,
						TrackID:   1,
						Name:      "Intro Clip",
						Style: &Style{
							Scale:    Float(100),
							Opacity:  Float(1),
							X:        Float(50),
							Y:        Float(50),
							Rotation: Float(0),
						},
					},
				},
			},
			{
				ID:   2,
				Type: TrackOverlay,
				Name: "Text Overlay",
				Items: []Item{
					{
						ID:        "text-1",
						Type:      ItemText,
						Content:   "Welcome to Reelpad",
						StartTime: 0.5,
						Duration:  4,
						TrackID:   2,
						Name:      "Title",
						Style: &Style{
							Color:    String("#ffffff"),
							FontSize: Float(48),
							X:        Float(50),
							Y:        Float(80),
							Scale:    Float(100),
							Opacity:  Float(1),
							Rotation: Float(0),
						},
					},
				},
			},
			{
				ID:    3,
				Type:  TrackAudio,
				Name:  "Background Music",
				Items: []Item{},
			},
		},
	}
}

// DefaultAssets is the starter media library.
func DefaultAssets() []Asset {
	return []Asset{
		{
			ID:        "asset-1",
			Type:      ItemVideo,
			Name:      "Big Buck Bunny",
			URL:       "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			Thumbnail: "https://storage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg",
		},
		{
			ID:        "asset-2",
			Type:      ItemVideo,
			Name:      "Elephants Dream",
			URL:       "https://storage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			Thumbnail: "https://storage.googleapis.com/gtv-videos-bucket/sample/images/ElephantsDream.jpg",
		},
		{
			ID:        "asset-3",
			Type:      ItemImage,
			Name:      "Mountain Landscape",
			URL:       "https://picsum.photos/id/10/1280/720",
			Thumbnail: "https://picsum.photos/id/10/200/200",
		},
		{
			ID:        "asset-4",
			Type:      ItemImage,
			Name:      "City Night",
			URL:       "https://picsum.photos/id/15/1280/720",
			Thumbnail: "https://picsum.photos/id/15/200/200",
		},
	}
}
