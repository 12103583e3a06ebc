package library

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/reelpad/reelpad/project"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDecodesLocalThumbnails(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png")

	assets := []project.Asset{
		{ID: "a", Type: project.ItemImage, Thumbnail: good},
		{ID: "b", Type: project.ItemVideo, Thumbnail: "https://example.com/remote.jpg"},
		{ID: "c", Type: project.ItemAudio},
	}

	th := NewThumbs()
	if err := th.Load(context.Background(), assets); err != nil {
		t.Fatalf("Load: %v", err)
	}

	img, ok := th.Get("a")
	if !ok {
		t.Fatal("local thumbnail not decoded")
	}
	if img.Bounds().Dx() != 8 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, ok := th.Get("b"); ok {
		t.Fatal("remote thumbnail should be skipped")
	}
	if _, ok := th.Get("c"); ok {
		t.Fatal("asset without thumbnail should be skipped")
	}
}

func TestLoadRecordsPerAssetErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := writePNG(t, dir, "good.png")

	assets := []project.Asset{
		{ID: "bad", Thumbnail: bad},
		{ID: "good", Thumbnail: good},
	}

	th := NewThumbs()
	if err := th.Load(context.Background(), assets); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if th.Err("bad") == nil {
		t.Fatal("decode failure not recorded")
	}
	if _, ok := th.Get("good"); !ok {
		t.Fatal("good asset blocked by bad one")
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png")
	assets := []project.Asset{{ID: "a", Thumbnail: good}}

	th := NewThumbs()
	if err := th.Load(context.Background(), assets); err != nil {
		t.Fatal(err)
	}
	// Delete the file; a second load must not re-read it.
	if err := os.Remove(good); err != nil {
		t.Fatal(err)
	}
	if err := th.Load(context.Background(), assets); err != nil {
		t.Fatal(err)
	}
	if _, ok := th.Get("a"); !ok {
		t.Fatal("cached thumbnail lost")
	}
}
