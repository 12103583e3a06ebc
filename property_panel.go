package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/reelpad/reelpad/project"
	"github.com/reelpad/reelpad/timeline"
)

// PropertyPanel is the right-hand inspector for the selected clip.
// Edits are pushed to the store as partial patches on every keystroke
// that parses; Refresh writes store state back into the inputs with the
// suppress flag held so the round trip doesn't echo.
type PropertyPanel struct {
	app *App

	container *widget.Container
	form      *widget.Container
	empty     *widget.Label
	suppress  bool

	nameInput     *widget.TextInput
	contentInput  *widget.TextInput
	startInput    *widget.TextInput
	durationInput *widget.TextInput
	xInput        *widget.TextInput
	yInput        *widget.TextInput
	scaleInput    *widget.TextInput
	rotationInput *widget.TextInput
	opacityInput  *widget.TextInput
	fontSizeInput *widget.TextInput
	colorInput    *widget.TextInput
}

func NewPropertyPanel(app *App, theme *widget.Theme) *PropertyPanel {
	pp := &PropertyPanel{app: app}

	pp.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(propsWidth, 0)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
	)

	pp.container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Properties", &app.fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))

	pp.empty = widget.NewLabel(
		widget.LabelOpts.Text("No clip selected", &app.fontFace, &widget.LabelColor{Idle: colorTextDim, Disabled: color.Gray{Y: 100}}),
	)
	pp.container.AddChild(pp.empty)

	pp.form = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	pp.form.GetWidget().Visibility = widget.Visibility_Hide
	pp.container.AddChild(pp.form)

	makeField := func(label string, onChange func(text string)) *widget.TextInput {
		pp.form.AddChild(widget.NewLabel(
			widget.LabelOpts.Text(label, &app.fontFace, &widget.LabelColor{Idle: colorTextDim, Disabled: color.Gray{Y: 100}}),
		))
		input := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(propsWidth-40, 26)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
				Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
			widget.TextInputOpts.Face(&app.fontFace),
			widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
				if pp.suppress {
					return
				}
				onChange(args.InputText)
			}),
		)
		pp.form.AddChild(input)
		return input
	}

	pp.nameInput = makeField("Name", func(text string) {
		pp.patch(project.Patch{Name: project.String(text)})
	})
	pp.contentInput = makeField("Content", func(text string) {
		pp.patch(project.Patch{Content: project.String(text)})
	})
	pp.startInput = makeField("Start (s)", func(text string) {
		if v, ok := parseNum(text); ok && v >= 0 {
			pp.patch(project.Patch{StartTime: project.Float(v)})
		}
	})
	pp.durationInput = makeField("Duration (s)", func(text string) {
		if v, ok := parseNum(text); ok && v >= timeline.MinDuration {
			pp.patch(project.Patch{Duration: project.Float(v)})
		}
	})
	pp.xInput = pp.makeStyleField(makeField, "X (%)", func(st *project.Style, v float64) { st.X = project.Float(v) })
	pp.yInput = pp.makeStyleField(makeField, "Y (%)", func(st *project.Style, v float64) { st.Y = project.Float(v) })
	pp.scaleInput = pp.makeStyleField(makeField, "Scale (%)", func(st *project.Style, v float64) { st.Scale = project.Float(v) })
	pp.rotationInput = pp.makeStyleField(makeField, "Rotation (deg)", func(st *project.Style, v float64) { st.Rotation = project.Float(v) })
	pp.opacityInput = pp.makeStyleField(makeField, "Opacity (0-1)", func(st *project.Style, v float64) { st.Opacity = project.Float(v) })
	pp.fontSizeInput = pp.makeStyleField(makeField, "Font size", func(st *project.Style, v float64) { st.FontSize = project.Float(v) })
	pp.colorInput = makeField("Color (#rrggbb)", func(text string) {
		text = strings.TrimSpace(text)
		if _, err := parseHexColor(text); err != nil {
			return
		}
		pp.patch(project.Patch{Style: &project.Style{Color: project.String(text)}})
	})

	del := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Delete clip", &app.fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if id := app.store.SelectedID(); id != "" {
				if err := app.store.DeleteItem(id); err == nil {
					app.status = "clip deleted"
				}
			}
		}),
	)
	pp.form.AddChild(del)

	return pp
}

func (pp *PropertyPanel) makeStyleField(makeField func(string, func(string)) *widget.TextInput, label string, set func(*project.Style, float64)) *widget.TextInput {
	return makeField(label, func(text string) {
		v, ok := parseNum(text)
		if !ok {
			return
		}
		st := &project.Style{}
		set(st, v)
		pp.patch(project.Patch{Style: st})
	})
}

func (pp *PropertyPanel) patch(patch project.Patch) {
	id := pp.app.store.SelectedID()
	if id == "" {
		return
	}
	if err := pp.app.store.UpdateItem(id, patch); err != nil {
		pp.app.status = err.Error()
	}
}

// Refresh writes the selected item back into the form. Inputs the user
// is currently typing in are left alone so partial numbers like "2."
// don't get reformatted out from under the caret.
func (pp *PropertyPanel) Refresh() {
	item, ok := pp.app.store.Selected()
	if !ok {
		pp.form.GetWidget().Visibility = widget.Visibility_Hide
		pp.empty.GetWidget().Visibility = widget.Visibility_Show
		return
	}
	pp.form.GetWidget().Visibility = widget.Visibility_Show
	pp.empty.GetWidget().Visibility = widget.Visibility_Hide

	focused := pp.app.ui.GetFocusedWidget()
	set := func(input *widget.TextInput, value string) {
		if input == focused {
			return
		}
		input.SetText(value)
	}

	pp.suppress = true
	defer func() { pp.suppress = false }()

	set(pp.nameInput, item.Name)
	set(pp.contentInput, item.Content)
	set(pp.startInput, formatNum(item.StartTime))
	set(pp.durationInput, formatNum(item.Duration))
	set(pp.xInput, styleText(item.Style, func(s *project.Style) *float64 { return s.X }, 50))
	set(pp.yInput, styleText(item.Style, func(s *project.Style) *float64 { return s.Y }, 50))
	set(pp.scaleInput, styleText(item.Style, func(s *project.Style) *float64 { return s.Scale }, 100))
	set(pp.rotationInput, styleText(item.Style, func(s *project.Style) *float64 { return s.Rotation }, 0))
	set(pp.opacityInput, styleText(item.Style, func(s *project.Style) *float64 { return s.Opacity }, 1))
	set(pp.fontSizeInput, styleText(item.Style, func(s *project.Style) *float64 { return s.FontSize }, 48))
	col := ""
	if item.Style != nil && item.Style.Color != nil {
		col = *item.Style.Color
	}
	set(pp.colorInput, col)
}

func parseNum(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return v, err == nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func styleText(st *project.Style, field func(*project.Style) *float64, def float64) string {
	if st != nil {
		if v := field(st); v != nil {
			return formatNum(*v)
		}
	}
	return fmt.Sprintf("%g", def)
}
