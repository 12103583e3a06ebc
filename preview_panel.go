package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/reelpad/reelpad/preview"
	"github.com/reelpad/reelpad/project"
)

// PreviewPanel renders the project canvas at the playhead: active clips
// composited bottom-up by track ID, each with its style transform
// applied. Media that cannot be decoded locally shows as a labeled
// placeholder so layout and timing still read correctly.
type PreviewPanel struct {
	app    *App
	canvas *ebiten.Image
	images map[string]*ebiten.Image
}

func NewPreviewPanel(app *App) *PreviewPanel {
	return &PreviewPanel{app: app, images: make(map[string]*ebiten.Image)}
}

func (p *PreviewPanel) rect() image.Rectangle {
	return image.Rect(sidebarWidth, toolbarHeight, p.app.screenW-propsWidth, p.app.screenH-timelineHeight)
}

func (p *PreviewPanel) Draw(screen *ebiten.Image) {
	doc := p.app.store.Project()
	if doc.Width <= 0 || doc.Height <= 0 {
		return
	}
	if p.canvas == nil || p.canvas.Bounds().Dx() != doc.Width || p.canvas.Bounds().Dy() != doc.Height {
		p.canvas = ebiten.NewImage(doc.Width, doc.Height)
	}
	p.canvas.Fill(colorCanvasBG)

	now := p.app.clk.Now()
	for _, it := range preview.ActiveItems(doc.Tracks, now) {
		switch it.Type {
		case project.ItemVideo, project.ItemImage:
			p.drawVisual(it, doc)
		case project.ItemText:
			p.drawText(it, doc)
		}
	}

	p.blitCanvas(screen, doc)
}

// blitCanvas letterboxes the canvas into the viewport.
func (p *PreviewPanel) blitCanvas(screen *ebiten.Image, doc project.Project) {
	r := p.rect()
	if r.Dx() <= 20 || r.Dy() <= 20 {
		return
	}
	availW := float64(r.Dx() - 20)
	availH := float64(r.Dy() - 20)
	scale := math.Min(availW/float64(doc.Width), availH/float64(doc.Height))

	w := float64(doc.Width) * scale
	h := float64(doc.Height) * scale
	x := float64(r.Min.X) + (float64(r.Dx())-w)/2
	y := float64(r.Min.Y) + (float64(r.Dy())-h)/2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(p.canvas, op)

	vector.StrokeRect(screen, float32(x)-1, float32(y)-1, float32(w)+2, float32(h)+2, 1, colorRowBorder, false)
}

// styleTransform builds the canvas-space transform for an item that
// fills the canvas: translate by the style's x/y offset from center,
// then rotate, then scale, all around the canvas center.
func styleTransform(st *project.Style, w, h float64) (ebiten.GeoM, float32) {
	x := styleOr(st, func(s *project.Style) *float64 { return s.X }, 50)
	y := styleOr(st, func(s *project.Style) *float64 { return s.Y }, 50)
	scale := styleOr(st, func(s *project.Style) *float64 { return s.Scale }, 100) / 100
	rotation := styleOr(st, func(s *project.Style) *float64 { return s.Rotation }, 0) * math.Pi / 180
	opacity := styleOr(st, func(s *project.Style) *float64 { return s.Opacity }, 1)

	var g ebiten.GeoM
	g.Translate(-w/2, -h/2)
	g.Translate((x-50)/100*w, (y-50)/100*h)
	g.Rotate(rotation)
	g.Scale(scale, scale)
	g.Translate(w/2, h/2)
	return g, float32(opacity)
}

func (p *PreviewPanel) drawVisual(it project.Item, doc project.Project) {
	w, h := float64(doc.Width), float64(doc.Height)
	img := p.imageFor(it)

	base, alpha := styleTransform(it.Style, w, h)

	if img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w/float64(img.Bounds().Dx()), h/float64(img.Bounds().Dy()))
		op.GeoM.Concat(base)
		op.ColorScale.ScaleAlpha(alpha)
		op.Filter = ebiten.FilterLinear
		p.canvas.DrawImage(img, op)
		return
	}

	// No decodable frame for this media; show a placeholder slab in the
	// item's color.
	c := itemColor(it.Type)
	c.A = uint8(float32(c.A) * alpha * 0.35)
	vector.FillRect(p.canvas, 0, 0, float32(w), float32(h), c, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(w/2-float64(len(it.Name))*4, h/2)
	op.ColorScale.ScaleWithColor(colorText)
	ebtext.Draw(p.canvas, it.Name, p.app.fontFace, op)
}

func (p *PreviewPanel) drawText(it project.Item, doc project.Project) {
	w, h := float64(doc.Width), float64(doc.Height)

	x := styleOr(it.Style, func(s *project.Style) *float64 { return s.X }, 50) / 100 * w
	y := styleOr(it.Style, func(s *project.Style) *float64 { return s.Y }, 50) / 100 * h
	size := styleOr(it.Style, func(s *project.Style) *float64 { return s.FontSize }, 48)
	scale := styleOr(it.Style, func(s *project.Style) *float64 { return s.Scale }, 100) / 100
	rotation := styleOr(it.Style, func(s *project.Style) *float64 { return s.Rotation }, 0) * math.Pi / 180
	opacity := styleOr(it.Style, func(s *project.Style) *float64 { return s.Opacity }, 1)

	col := colorText
	if it.Style != nil && it.Style.Color != nil {
		if c, err := parseHexColor(*it.Style.Color); err == nil {
			col = c
		}
	}

	face := &ebtext.GoTextFace{Source: p.app.fontSrc, Size: size}
	tw, th := ebtext.Measure(it.Content, face, 0)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(-tw/2, -th/2)
	op.GeoM.Rotate(rotation)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(float32(opacity))
	ebtext.Draw(p.canvas, it.Content, face, op)
}

// imageFor returns a GPU image for the item's media if a local
// thumbnail was decoded for the matching asset.
func (p *PreviewPanel) imageFor(it project.Item) *ebiten.Image {
	if img, ok := p.images[it.Content]; ok {
		return img
	}
	for _, a := range p.app.store.Assets() {
		if a.URL != it.Content {
			continue
		}
		raw, ok := p.app.thumbs.Get(a.ID)
		if !ok {
			return nil
		}
		img := ebiten.NewImageFromImage(raw)
		p.images[it.Content] = img
		return img
	}
	return nil
}

func styleOr(st *project.Style, field func(*project.Style) *float64, def float64) float64 {
	if st == nil {
		return def
	}
	if v := field(st); v != nil {
		return *v
	}
	return def
}

func parseHexColor(s string) (color.RGBA, error) {
	c := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(c) != 6 && len(c) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(c[start:start+2], 16, 8)
		return uint8(v), err
	}
	r, err := parse(0)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.RGBA{}, err
	}
	a := uint8(255)
	if len(c) == 8 {
		if a, err = parse(6); err != nil {
			return color.RGBA{}, err
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
