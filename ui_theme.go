package main

import (
	"image/color"

	uiimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/reelpad/reelpad/project"
)

var (
	colorBackdrop  = color.RGBA{10, 10, 10, 255}
	colorLaneBG    = color.RGBA{21, 21, 21, 255}
	colorPanelBG   = color.RGBA{30, 30, 30, 255}
	colorRowBorder = color.RGBA{34, 34, 34, 255}
	colorRulerTick = color.RGBA{75, 85, 99, 255}

	colorText    = color.RGBA{240, 240, 240, 255}
	colorTextDim = color.RGBA{156, 163, 175, 255}

	colorVideoItem = color.RGBA{37, 99, 235, 255}
	colorImageItem = color.RGBA{79, 70, 229, 255}
	colorTextItem  = color.RGBA{234, 88, 12, 255}
	colorAudioItem = color.RGBA{5, 150, 105, 255}
	colorOtherItem = color.RGBA{75, 85, 99, 255}

	colorItemInvalid    = color.RGBA{127, 29, 29, 200}
	colorBorderInvalid  = color.RGBA{239, 68, 68, 255}
	colorBorderSelected = color.RGBA{255, 255, 255, 255}
	colorHandle         = color.RGBA{255, 255, 255, 128}
	colorPlayhead       = color.RGBA{239, 68, 68, 255}
	colorTrackHover     = color.RGBA{34, 34, 34, 255}

	colorCanvasBG = color.RGBA{0, 0, 0, 255}
)

func itemColor(t project.ItemType) color.RGBA {
	switch t {
	case project.ItemVideo:
		return colorVideoItem
	case project.ItemImage:
		return colorImageItem
	case project.ItemText:
		return colorTextItem
	case project.ItemAudio:
		return colorAudioItem
	}
	return colorOtherItem
}

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *uiimage.NineSlice {
	return uiimage.NewNineSliceColor(c)
}

func newAppTheme(fontFace *ebtext.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          colorText,
				Selected:            color.RGBA{168, 85, 247, 255},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{55, 48, 90, 255},
				SelectedBackground:  color.RGBA{55, 48, 120, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{24, 24, 24, 255}),
				Mask: solidNineSlice(color.RGBA{24, 24, 24, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(colorPanelBG),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{55, 55, 55, 255}),
				Hover:   solidNineSlice(color.RGBA{75, 75, 75, 255}),
				Pressed: solidNineSlice(color.RGBA{40, 40, 40, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: colorText,
			},
		},
	}
}
