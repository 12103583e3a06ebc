package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/reelpad/reelpad/project"
	"github.com/reelpad/reelpad/timeline"
)

// LibraryPanel lists the importable media. Clicking an asset arms a
// drop payload; the next click on a timeline track places the asset
// there. The payload travels as the same JSON a script or another
// instance would produce.
type LibraryPanel struct {
	app *App

	container *widget.Container
	list      *widget.List
	hint      *widget.Label

	armed     []byte
	armedName string
}

func NewLibraryPanel(app *App, theme *widget.Theme) *LibraryPanel {
	lp := &LibraryPanel{app: app}

	lp.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(sidebarWidth, 0)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
	)

	lp.container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Library", &app.fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))

	lp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if a, ok := e.(project.Asset); ok {
				return a.Name + "  (" + string(a.Type) + ")"
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			a, ok := args.Entry.(project.Asset)
			if !ok {
				return
			}
			lp.armed = timeline.EncodeAsset(a)
			lp.armedName = a.Name
			lp.updateHint()
		}),
	)
	lp.container.AddChild(lp.list)

	lp.hint = widget.NewLabel(
		widget.LabelOpts.Text("", &app.fontFace, &widget.LabelColor{Idle: colorTextDim, Disabled: color.Gray{Y: 100}}),
	)
	lp.container.AddChild(lp.hint)

	cancel := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel drop", &app.fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			lp.Disarm()
		}),
	)
	lp.container.AddChild(cancel)

	return lp
}

// Refresh reloads the asset entries from the store.
func (lp *LibraryPanel) Refresh() {
	assets := lp.app.store.Assets()
	entries := make([]any, len(assets))
	for i, a := range assets {
		entries[i] = a
	}
	lp.list.SetEntries(entries)
}

// ArmedPayload returns the pending drop payload, or nil.
func (lp *LibraryPanel) ArmedPayload() []byte {
	return lp.armed
}

// Disarm cancels a pending drop.
func (lp *LibraryPanel) Disarm() {
	lp.armed = nil
	lp.armedName = ""
	lp.updateHint()
}

func (lp *LibraryPanel) updateHint() {
	if lp.armedName == "" {
		lp.hint.Label = ""
		return
	}
	lp.hint.Label = "click a track to place " + lp.armedName
}
