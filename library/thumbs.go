// Package library loads preview thumbnails for the asset panel.
package library

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"golang.org/x/sync/errgroup"

	"github.com/reelpad/reelpad/project"
)

const maxConcurrentDecodes = 4

// Thumbs caches decoded thumbnail images keyed by asset ID.
type Thumbs struct {
	mu     sync.Mutex
	images map[string]image.Image
	errs   map[string]error
}

func NewThumbs() *Thumbs {
	return &Thumbs{
		images: make(map[string]image.Image),
		errs:   make(map[string]error),
	}
}

// Load decodes the thumbnails of every asset with a local thumbnail
// file, a few at a time. Remote URLs are skipped; the panel shows a
// placeholder for those. Individual decode failures are recorded per
// asset and do not stop the rest.
func (t *Thumbs) Load(ctx context.Context, assets []project.Asset) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)

	for _, a := range assets {
		if a.Thumbnail == "" || isRemote(a.Thumbnail) {
			continue
		}
		if t.Has(a.ID) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(a.Thumbnail)
			t.mu.Lock()
			if err != nil {
				t.errs[a.ID] = err
			} else {
				t.images[a.ID] = img
			}
			t.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Get returns the decoded thumbnail for an asset.
func (t *Thumbs) Get(id string) (image.Image, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	img, ok := t.images[id]
	return img, ok
}

// Has reports whether an asset already has a decode result, success or
// failure.
func (t *Thumbs) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, img := t.images[id]
	_, err := t.errs[id]
	return img || err
}

// Err returns the decode error recorded for an asset, if any.
func (t *Thumbs) Err(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errs[id]
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func decodeFile(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("library: read thumbnail %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("library: decode thumbnail %s: %w", path, err)
	}
	return img, nil
}
