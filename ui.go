package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

func (a *App) buildUI() {
	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newAppTheme(&a.fontFace)

	a.lib = NewLibraryPanel(a, ui.PrimaryTheme)
	a.props = NewPropertyPanel(a, ui.PrimaryTheme)
	toolbar := a.buildToolbar(ui.PrimaryTheme)

	// The bottom strip belongs to the custom-drawn timeline panel, so
	// the widget tree is padded away from it.
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Bottom: timelineHeight}),
		)),
	)
	a.lib.container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	a.props.container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(a.lib.container)
	root.AddChild(a.props.container)
	root.AddChild(toolbar)

	ui.Container = root
	a.ui = ui

	a.lib.Refresh()
	a.props.Refresh()
}

func (a *App) buildToolbar(theme *widget.Theme) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
	)

	makeButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, &a.fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	bar.AddChild(makeButton("|<", func() { a.clk.Seek(0) }))
	bar.AddChild(makeButton("Play/Pause", func() { a.clk.Toggle() }))
	bar.AddChild(makeButton(">|", func() { a.clk.Seek(a.store.Duration()) }))
	bar.AddChild(makeButton("Save", a.saveProject))
	bar.AddChild(makeButton("Export", a.exportProject))
	bar.AddChild(makeButton("Pack Left", func() {
		if err := a.runner.RunEmbedded("pack_left"); err != nil {
			log.Printf("script: %v", err)
			a.status = "script failed"
		}
	}))
	bar.AddChild(makeButton("Add Slate", func() {
		if err := a.runner.RunEmbedded("intro_slate"); err != nil {
			log.Printf("script: %v", err)
			a.status = "script failed"
		}
	}))

	return bar
}
