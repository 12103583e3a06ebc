package main

import (
	"fmt"
	"image"
	"log"
	"math"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/reelpad/reelpad/project"
	"github.com/reelpad/reelpad/timeline"
)

const (
	laneHeaderW = 128
	rulerH      = 28
	trackH      = 64
	handlePx    = 5
	wheelSpeed  = 40
)

// TimelinePanel is the clip lane view at the bottom of the window:
// ruler, track rows, draggable clips and the playhead. It is drawn
// directly rather than through the widget tree because clip blocks
// need per-pixel hit testing against a scrolling time axis.
type TimelinePanel struct {
	app *App

	scrollX   float64
	scrubbing bool

	gesture      *timeline.Gesture
	gestureStart int

	dragOverTrack int
}

func NewTimelinePanel(app *App) *TimelinePanel {
	return &TimelinePanel{app: app, dragOverTrack: -1}
}

// Dragging reports whether a clip gesture is in flight.
func (p *TimelinePanel) Dragging() bool {
	return p.gesture != nil
}

func (p *TimelinePanel) rect() image.Rectangle {
	return image.Rect(0, p.app.screenH-timelineHeight, p.app.screenW, p.app.screenH)
}

func (p *TimelinePanel) laneX0() int {
	return p.rect().Min.X + laneHeaderW
}

// timeAt converts a screen x to a timeline position under the current
// scroll.
func (p *TimelinePanel) timeAt(mx int) float64 {
	return timeline.PxToTime(float64(mx-p.laneX0()) + p.scrollX)
}

func (p *TimelinePanel) screenX(t float64) float64 {
	return float64(p.laneX0()) + timeline.TimeToPx(t) - p.scrollX
}

func (p *TimelinePanel) trackIndexAt(my int) int {
	top := p.rect().Min.Y + rulerH
	if my < top {
		return -1
	}
	idx := (my - top) / trackH
	return idx
}

func (p *TimelinePanel) Update() {
	mx, my := ebiten.CursorPosition()
	r := p.rect()
	inside := image.Pt(mx, my).In(r)

	if inside {
		if _, wy := ebiten.Wheel(); wy != 0 {
			p.scrollX -= wy * wheelSpeed
			max := timeline.ContentWidth(p.app.store.Duration()) - float64(r.Dx()-laneHeaderW)
			p.scrollX = math.Max(0, math.Min(math.Max(0, max), p.scrollX))
		}
	}

	tracks := p.app.store.Tracks()

	p.dragOverTrack = -1
	if p.app.lib != nil && p.app.lib.ArmedPayload() != nil && inside {
		if idx := p.trackIndexAt(my); idx >= 0 && idx < len(tracks) {
			p.dragOverTrack = tracks[idx].ID
			if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !ebuiinput.UIHovered {
				p.dropArmedAsset(tracks[idx].ID, p.timeAt(mx))
				return
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			// Clicked inside the panel but not on a track; cancel.
			p.app.lib.Disarm()
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside && !ebuiinput.UIHovered && mx >= p.laneX0() {
		p.beginPress(mx, my, tracks)
	}

	if p.gesture != nil && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		delta := float64(mx-p.gestureStart) / timeline.Scale
		p.gesture.Update(delta)
	}
	if p.scrubbing && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		p.app.clk.Seek(p.timeAt(mx))
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.finishPress()
	}
}

func (p *TimelinePanel) beginPress(mx, my int, tracks []project.Track) {
	idx := p.trackIndexAt(my)
	if idx >= 0 && idx < len(tracks) {
		for _, it := range tracks[idx].Items {
			x0 := p.screenX(it.StartTime)
			x1 := p.screenX(it.End())
			fx := float64(mx)
			switch {
			case fx >= x0-handlePx && fx <= x0+handlePx:
				p.startGesture(tracks, it.ID, timeline.ResizeLeft, mx)
				return
			case fx >= x1-handlePx && fx <= x1+handlePx:
				p.startGesture(tracks, it.ID, timeline.ResizeRight, mx)
				return
			case fx > x0 && fx < x1:
				p.app.store.Select(it.ID)
				p.startGesture(tracks, it.ID, timeline.Move, mx)
				return
			}
		}
	}

	// Empty lane or ruler: scrub the playhead and drop the selection.
	p.scrubbing = true
	p.app.store.Select("")
	p.app.clk.Seek(p.timeAt(mx))
}

func (p *TimelinePanel) startGesture(tracks []project.Track, itemID string, typ timeline.GestureType, mx int) {
	g, err := timeline.Begin(tracks, itemID, typ)
	if err != nil {
		log.Printf("timeline: %v", err)
		return
	}
	p.gesture = g
	p.gestureStart = mx
}

func (p *TimelinePanel) finishPress() {
	p.scrubbing = false
	if p.gesture == nil {
		return
	}
	g := p.gesture
	p.gesture = nil

	start, duration, ok := g.End()
	if !ok {
		// Landed on another clip; leave the document untouched.
		return
	}
	err := p.app.store.UpdateItem(g.ItemID(), project.Patch{
		StartTime: &start,
		Duration:  &duration,
	})
	if err != nil {
		log.Printf("timeline: commit: %v", err)
	}
}

func (p *TimelinePanel) dropArmedAsset(trackID int, at float64) {
	payload := p.app.lib.ArmedPayload()
	p.app.lib.Disarm()
	asset, err := timeline.DecodeAsset(payload)
	if err != nil {
		log.Printf("drop: %v", err)
		return
	}
	item, err := timeline.PlaceAsset(p.app.store, trackID, asset, at)
	if err != nil {
		log.Printf("drop: %v", err)
		return
	}
	p.app.store.Select(item.ID)
}

func (p *TimelinePanel) Draw(screen *ebiten.Image) {
	r := p.rect()
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), colorLaneBG, false)

	tracks := p.app.store.Tracks()
	lane := screen.SubImage(image.Rect(p.laneX0(), r.Min.Y, r.Max.X, r.Max.Y)).(*ebiten.Image)

	p.drawRuler(lane, r)
	p.drawTracks(lane, r, tracks)
	p.drawPlayhead(lane, r)
	p.drawHeaders(screen, r, tracks)
}

func (p *TimelinePanel) drawRuler(lane *ebiten.Image, r image.Rectangle) {
	vector.FillRect(lane, float32(p.laneX0()), float32(r.Min.Y), float32(r.Dx()), rulerH, colorPanelBG, false)
	secs := int(math.Ceil(p.app.store.Duration() + 10))
	for i := 0; i <= secs; i++ {
		x := p.screenX(float64(i))
		if x < float64(p.laneX0()-40) || x > float64(r.Max.X+40) {
			continue
		}
		vector.StrokeLine(lane, float32(x), float32(r.Min.Y+rulerH-10), float32(x), float32(r.Min.Y+rulerH), 1, colorRulerTick, false)
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(x+2, float64(r.Min.Y+4))
		op.ColorScale.ScaleWithColor(colorTextDim)
		ebtext.Draw(lane, fmt.Sprintf("%ds", i), p.app.fontFace, op)
	}
}

func (p *TimelinePanel) drawTracks(lane *ebiten.Image, r image.Rectangle, tracks []project.Track) {
	for i, t := range tracks {
		top := float32(r.Min.Y + rulerH + i*trackH)
		if p.dragOverTrack == t.ID {
			vector.FillRect(lane, float32(p.laneX0()), top, float32(r.Dx()), trackH, colorTrackHover, false)
		}
		vector.StrokeLine(lane, float32(p.laneX0()), top+trackH, float32(r.Max.X), top+trackH, 1, colorRowBorder, false)

		for _, it := range t.Items {
			p.drawItem(lane, it, float64(top))
		}
	}
}

func (p *TimelinePanel) drawItem(lane *ebiten.Image, it project.Item, top float64) {
	start, duration := it.StartTime, it.Duration
	valid := true
	dragging := false
	if p.gesture != nil && p.gesture.ItemID() == it.ID {
		start, duration, valid = p.gesture.Tentative()
		dragging = true
	}

	x := float32(p.screenX(start))
	w := float32(timeline.TimeToPx(duration))
	y := float32(top + 4)
	h := float32(trackH - 8)

	fill := itemColor(it.Type)
	if !valid {
		fill = colorItemInvalid
	}
	vector.FillRect(lane, x, y, w, h, fill, false)

	selected := p.app.store.SelectedID() == it.ID
	switch {
	case !valid:
		vector.StrokeRect(lane, x, y, w, h, 2, colorBorderInvalid, false)
	case selected:
		vector.StrokeRect(lane, x, y, w, h, 2, colorBorderSelected, false)
	}

	if selected || dragging {
		vector.FillRect(lane, x-1, y+h/2-10, 3, 20, colorHandle, false)
		vector.FillRect(lane, x+w-2, y+h/2-10, 3, 20, colorHandle, false)
	}

	if w > 40 {
		name := it.Name
		if name == "" {
			name = it.Content
		}
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(x)+6, float64(y)+6)
		op.ColorScale.ScaleWithColor(colorText)
		ebtext.Draw(lane, name, p.app.fontFace, op)

		if dragging {
			op = &ebtext.DrawOptions{}
			op.GeoM.Translate(float64(x)+6, float64(y)+float64(h)/2+4)
			op.ColorScale.ScaleWithColor(colorTextDim)
			ebtext.Draw(lane, fmt.Sprintf("%.2fs  %.2fs", start, duration), p.app.fontFace, op)
		}
	}
}

func (p *TimelinePanel) drawPlayhead(lane *ebiten.Image, r image.Rectangle) {
	x := float32(p.screenX(p.app.clk.Now()))
	vector.StrokeLine(lane, x, float32(r.Min.Y), x, float32(r.Max.Y), 1, colorPlayhead, false)
}

func (p *TimelinePanel) drawHeaders(screen *ebiten.Image, r image.Rectangle, tracks []project.Track) {
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), laneHeaderW, float32(r.Dy()), colorPanelBG, false)

	// Transport readout in the corner cell above the headers.
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X+8), float64(r.Min.Y+6))
	op.ColorScale.ScaleWithColor(colorText)
	ebtext.Draw(screen, formatTime(p.app.clk.Now())+" / "+formatTime(p.app.store.Duration()), p.app.fontFace, op)

	for i, t := range tracks {
		top := r.Min.Y + rulerH + i*trackH
		vector.StrokeLine(screen, float32(r.Min.X), float32(top+trackH), laneHeaderW, float32(top+trackH), 1, colorRowBorder, false)

		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(r.Min.X+8), float64(top+12))
		op.ColorScale.ScaleWithColor(colorText)
		ebtext.Draw(screen, fmt.Sprintf("%d  %s", t.ID, t.Name), p.app.fontFace, op)

		op = &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(r.Min.X+8), float64(top+32))
		op.ColorScale.ScaleWithColor(colorTextDim)
		ebtext.Draw(screen, string(t.Type), p.app.fontFace, op)
	}

	if p.app.status != "" {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(r.Min.X+8), float64(r.Max.Y-20))
		op.ColorScale.ScaleWithColor(colorTextDim)
		ebtext.Draw(screen, p.app.status, p.app.fontFace, op)
	}
}

func formatTime(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	cs := int(math.Floor(math.Mod(seconds, 1) * 100))
	return fmt.Sprintf("%02d:%02d.%02d", mins, secs, cs)
}
