package window

import (
	"image/color"

	ebimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

var (
	colorBackground = color.NRGBA{0x1c, 0x1e, 0x26, 0xff}
	colorPanel      = color.NRGBA{0x26, 0x29, 0x33, 0xff}
	colorAccent     = colornames.Darkcyan
)

func makeButton(face *text.Face, label string, handler func(*widget.ButtonClickedEventArgs), wopts ...widget.WidgetOpt) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
			Idle:     colornames.White,
			Disabled: colornames.Gray,
			Hover:    colornames.Lightskyblue,
			Pressed:  colornames.Yellow,
		}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(4)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:         ebimage.NewNineSliceColor(colornames.Dimgray),
			Hover:        ebimage.NewNineSliceColor(colornames.Dimgray),
			Pressed:      ebimage.NewNineSliceColor(colornames.Dimgray),
			PressedHover: ebimage.NewNineSliceColor(colornames.Dimgray),
			Disabled:     ebimage.NewNineSliceColor(colornames.Dimgray),
		}),
		widget.ButtonOpts.ClickedHandler(handler),
		widget.ButtonOpts.WidgetOpts(wopts...),
	)
}

func makeToggleButton(face *text.Face, label string, handler func(*widget.ButtonChangedEventArgs), wopts ...widget.WidgetOpt) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
			Idle:     colornames.White,
			Disabled: colornames.Gray,
			Hover:    colornames.Lightskyblue,
			Pressed:  colornames.Orangered,
		}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(4)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:         ebimage.NewNineSliceColor(colornames.Dimgray),
			Hover:        ebimage.NewNineSliceColor(colornames.Dimgray),
			Pressed:      ebimage.NewNineSliceColor(colornames.Firebrick),
			PressedHover: ebimage.NewNineSliceColor(colornames.Firebrick),
			Disabled:     ebimage.NewNineSliceColor(colornames.Dimgray),
		}),
		widget.ButtonOpts.ToggleMode(),
		widget.ButtonOpts.StateChangedHandler(handler),
		widget.ButtonOpts.WidgetOpts(wopts...),
	)
}

func makeList(face *text.Face, labeler func(e any) string, handler func(*widget.ListEntrySelectedEventArgs)) *widget.List {
	return widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{}),
		)),
		widget.ListOpts.ScrollContainerOpts(
			widget.ScrollContainerOpts.Image(&widget.ScrollContainerImage{
				Idle:     ebimage.NewNineSliceColor(colorPanel),
				Disabled: ebimage.NewNineSliceColor(colorPanel),
				Mask:     ebimage.NewNineSliceColor(colorPanel),
			}),
		),
		widget.ListOpts.SliderOpts(
			widget.SliderOpts.Images(&widget.SliderTrackImage{
				Idle:  ebimage.NewNineSliceColor(colornames.Dimgray),
				Hover: ebimage.NewNineSliceColor(colornames.Dimgray),
			}, sliderHandleImage()),
			widget.SliderOpts.MinHandleSize(5),
			widget.SliderOpts.TrackPadding(widget.NewInsetsSimple(2)),
		),
		widget.ListOpts.HideHorizontalSlider(),
		widget.ListOpts.EntryFontFace(face),
		widget.ListOpts.EntryColor(&widget.ListEntryColor{
			Selected:           colornames.White,
			SelectedBackground: colorAccent,
			Unselected:         colornames.White,
			DisabledSelected:   colornames.Lightgray,
			DisabledUnselected: colornames.Lightgray,
			FocusedBackground:  colorAccent,
		}),
		widget.ListOpts.EntryLabelFunc(labeler),
		widget.ListOpts.EntryTextPadding(widget.NewInsetsSimple(5)),
		widget.ListOpts.EntryTextPosition(widget.TextPositionStart, widget.TextPositionCenter),
		widget.ListOpts.EntrySelectedHandler(handler),
	)
}

func makeSlider(min, max, initial int, onChange func(int)) *widget.Slider {
	slider := widget.NewSlider(
		widget.SliderOpts.MinMax(min, max),
		widget.SliderOpts.InitialCurrent(initial),
		widget.SliderOpts.Images(sliderTrackImage(), sliderHandleImage()),
		widget.SliderOpts.MinHandleSize(16),
		widget.SliderOpts.PageSizeFunc(func() int { return 1 }),
		widget.SliderOpts.TrackPadding(widget.NewInsetsSimple(2)),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			}),
			widget.WidgetOpts.MinSize(200, 20),
		),
	)
	slider.ChangedEvent.AddHandler(func(e any) {
		args := e.(*widget.SliderChangedEventArgs)
		onChange(args.Current)
	})
	return slider
}

func sliderTrackImage() *widget.SliderTrackImage {
	return &widget.SliderTrackImage{
		Idle:  ebimage.NewNineSliceColor(colornames.Dimgray),
		Hover: ebimage.NewNineSliceColor(colornames.Dimgray),
	}
}

func sliderHandleImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    ebimage.NewNineSliceColor(colornames.Lightgray),
		Hover:   ebimage.NewNineSliceColor(colornames.Seashell),
		Pressed: ebimage.NewNineSliceColor(colornames.Seashell),
	}
}
