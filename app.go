package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/reelpad/reelpad/clock"
	"github.com/reelpad/reelpad/config"
	"github.com/reelpad/reelpad/library"
	"github.com/reelpad/reelpad/preview"
	"github.com/reelpad/reelpad/project"
	"github.com/reelpad/reelpad/script"
	"github.com/reelpad/reelpad/timeline"
	"github.com/reelpad/reelpad/watch"
)

const (
	sidebarWidth   = 260
	propsWidth     = 300
	toolbarHeight  = 44
	timelineHeight = 300
)

type App struct {
	cfg   *config.Config
	store *project.Store
	clk   *clock.Clock
	sync  *preview.Synchronizer

	runner  *script.Runner
	watcher *watch.Watcher
	thumbs  *library.Thumbs

	audioCtx    *audio.Context
	audioByItem map[string]*preview.AudioPlayer

	ui       *ebitenui.UI
	fontFace ebtext.Face
	fontSrc  *ebtext.GoTextFaceSource
	props    *PropertyPanel
	lane     *TimelinePanel
	view     *PreviewPanel
	lib      *LibraryPanel

	screenW, screenH int
	lastTick         time.Time
	lastVersion      uint64
	lastSelected     string
	lastAutosave     time.Time
	lastSave         time.Time
	clipboardOK      bool
	status           string
}

// selfWriteWindow is how long after one of our own saves a watcher
// event for the project file is treated as the echo of that save.
const selfWriteWindow = time.Second

func NewApp(cfg *config.Config, clipboardOK bool) (*App, error) {
	store := project.NewStore(project.DefaultProject(), project.DefaultAssets())
	if cfg.Project.File != "" {
		if err := store.Load(cfg.Project.File); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("project file %s does not exist yet, starting fresh", cfg.Project.File)
			} else {
				return nil, err
			}
		}
	}

	clk := clock.New(store.Duration())

	src, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	var fontFace ebtext.Face = &ebtext.GoTextFace{Source: src, Size: 13}

	a := &App{
		cfg:         cfg,
		store:       store,
		clk:         clk,
		sync:        preview.NewSynchronizer(),
		audioCtx:    preview.NewAudioContext(),
		audioByItem: make(map[string]*preview.AudioPlayer),
		thumbs:      library.NewThumbs(),
		fontFace:    fontFace,
		fontSrc:     src,
		clipboardOK: clipboardOK,
	}
	a.runner = script.NewRunner(store, clk)
	a.lane = NewTimelinePanel(a)
	a.view = NewPreviewPanel(a)
	a.buildUI()
	// Force the first Update to run the full refresh path.
	a.lastVersion = ^uint64(0)

	if cfg.Watch.Enabled && cfg.Project.File != "" {
		paths := []string{cfg.Project.File}
		if cfg.Scripts.Dir != "" {
			paths = append(paths, cfg.Scripts.Dir)
		}
		w, err := watch.New(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, paths...)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	return a, nil
}

func (a *App) Shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	for _, p := range a.audioByItem {
		_ = p.Close()
	}
}

// RunScript runs a script from disk, or an embedded one when no such
// file exists.
func (a *App) RunScript(name string) error {
	if _, err := os.Stat(name); err == nil {
		return a.runner.RunFile(name)
	}
	return a.runner.RunEmbedded(name)
}

func (a *App) Update() error {
	now := time.Now()
	if !a.lastTick.IsZero() {
		a.clk.Tick(now.Sub(a.lastTick).Seconds())
	}
	a.lastTick = now

	a.drainWatcher()

	a.ui.Update()

	suppressHotkeys := false
	if fw := a.ui.GetFocusedWidget(); fw != nil {
		switch fw.(type) {
		case *widget.TextInput:
			suppressHotkeys = true
		}
	}
	if !suppressHotkeys {
		a.handleHotkeys()
	}

	if !suppressHotkeys {
		a.lane.Update()
	}

	a.refreshOnChange()
	a.sync.Sync(a.store.Tracks(), a.clk.Now(), a.clk.Playing())
	a.autosave(now)

	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackdrop)
	a.view.Draw(screen)
	a.lane.Draw(screen)
	a.ui.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 960 {
		outsideWidth = 960
	}
	if outsideHeight < 600 {
		outsideHeight = 600
	}
	a.screenW, a.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (a *App) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.clk.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.clk.Seek(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.clk.Seek(a.store.Duration())
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if id := a.store.SelectedID(); id != "" {
			if err := a.store.DeleteItem(id); err != nil {
				log.Printf("delete: %v", err)
			}
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if !ctrl {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.saveProject()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.copySelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		a.pasteAtPlayhead()
	}
}

func (a *App) saveProject() {
	if a.cfg.Project.File == "" {
		a.status = "no project file configured"
		return
	}
	if err := a.store.Save(a.cfg.Project.File); err != nil {
		log.Printf("save: %v", err)
		a.status = "save failed"
		return
	}
	a.lastSave = time.Now()
	a.status = "saved " + a.cfg.Project.File
}

func (a *App) exportProject() {
	b, err := a.store.ExportJSON()
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	name := fmt.Sprintf("export-%s.json", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(name, b, 0o644); err != nil {
		log.Printf("export: %v", err)
		a.status = "export failed"
		return
	}
	a.status = "exported " + name
}

func (a *App) copySelected() {
	if !a.clipboardOK {
		return
	}
	item, ok := a.store.Selected()
	if !ok {
		return
	}
	clipboard.Write(clipboard.FmtText, timeline.EncodeItem(item))
	a.status = "copied " + item.Name
}

// pasteAtPlayhead inserts the clipboard clip on its original track,
// starting at the playhead or the nearest free span after it.
func (a *App) pasteAtPlayhead() {
	if !a.clipboardOK {
		return
	}
	b := clipboard.Read(clipboard.FmtText)
	if len(b) == 0 {
		return
	}
	item, err := timeline.DecodeItem(b)
	if err != nil {
		return
	}
	track, err := a.store.Track(item.TrackID)
	if err != nil {
		return
	}
	item.StartTime = timeline.ResolveDrop(track, a.clk.Now(), item.Duration)
	if err := a.store.AddItem(track.ID, item); err != nil {
		log.Printf("paste: %v", err)
		return
	}
	a.store.Select(item.ID)
}

func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	// Hold external reloads while a drag is in flight; the events stay
	// queued and land on the next idle frame.
	if a.lane.Dragging() {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.onWatchedFile(path)
		case err, ok := <-a.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (a *App) onWatchedFile(path string) {
	switch {
	case strings.HasSuffix(path, ".json"):
		if a.isSelfWrite(path, time.Now()) {
			return
		}
		if err := a.store.Load(path); err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		a.clk.SetDuration(a.store.Duration())
		a.status = "reloaded " + path
	case strings.HasSuffix(path, ".tengo"):
		if err := a.runner.RunFile(path); err != nil {
			log.Printf("script %s: %v", path, err)
			a.status = "script failed"
			return
		}
		a.status = "ran " + path
	}
}

// isSelfWrite reports whether a watcher event for the project file is
// just the echo of a save this process performed. Reloading on those
// would clear the selection and rebuild the audio players for nothing.
func (a *App) isSelfWrite(path string, now time.Time) bool {
	if a.cfg.Project.File == "" || filepath.Clean(path) != filepath.Clean(a.cfg.Project.File) {
		return false
	}
	return !a.lastSave.IsZero() && now.Sub(a.lastSave) < selfWriteWindow
}

// refreshOnChange reconciles everything keyed to the document version
// or the selection: the property panel contents and the set of audio
// players registered with the synchronizer.
func (a *App) refreshOnChange() {
	version := a.store.Version()
	selected := a.store.SelectedID()
	if version == a.lastVersion && selected == a.lastSelected {
		return
	}
	a.lastVersion = version
	a.lastSelected = selected

	a.props.Refresh()
	a.lib.Refresh()
	a.reconcileAudio()

	assets := a.store.Assets()
	go func() {
		if err := a.thumbs.Load(context.Background(), assets); err != nil {
			log.Printf("thumbnails: %v", err)
		}
	}()
}

// reconcileAudio opens players for audio clips that point at local
// files and drops players whose clip is gone.
func (a *App) reconcileAudio() {
	want := make(map[string]project.Item)
	for _, t := range a.store.Tracks() {
		for _, it := range t.Items {
			if it.Type == project.ItemAudio && isLocalPath(it.Content) {
				want[it.ID] = it
			}
		}
	}

	for id, p := range a.audioByItem {
		if _, ok := want[id]; !ok {
			a.sync.Unregister(id)
			_ = p.Close()
			delete(a.audioByItem, id)
		}
	}

	for id, it := range want {
		if _, ok := a.audioByItem[id]; ok {
			continue
		}
		p, err := preview.OpenAudio(a.audioCtx, it.Content)
		if err != nil {
			log.Printf("audio: %v", err)
			continue
		}
		a.audioByItem[id] = p
		a.sync.Register(id, p)
		a.sync.Ready(id, it, a.clk.Now(), a.clk.Playing())
	}
}

func (a *App) autosave(now time.Time) {
	secs := a.cfg.Project.AutosaveSeconds
	if secs <= 0 || a.cfg.Project.File == "" {
		return
	}
	if a.lastAutosave.IsZero() {
		a.lastAutosave = now
		return
	}
	if now.Sub(a.lastAutosave) >= time.Duration(secs)*time.Second {
		a.saveProject()
		a.lastAutosave = now
	}
}

func isLocalPath(content string) bool {
	if content == "" {
		return false
	}
	if u, err := url.Parse(content); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return false
	}
	return true
}
