package window

import (
	"github.com/blaubaer/audio-switcher/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		Width:    420,
		Height:   300,
		Floating: true,
		FPS:      30,
	}
}

type Configuration struct {
	Width  int `yaml:"width,omitempty" validate:"omitempty,min=240,max=4096"`
	Height int `yaml:"height,omitempty" validate:"omitempty,min=160,max=4096"`

	// Floating keeps the window always on top.
	Floating bool `yaml:"floating"`

	FPS int `yaml:"fps,omitempty" validate:"omitempty,min=1,max=240"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("window.width", "Width of the window in pixels.").
		Envar("AS_WINDOW_WIDTH").
		IntVar(&this.Width)
	using.Flag("window.height", "Height of the window in pixels.").
		Envar("AS_WINDOW_HEIGHT").
		IntVar(&this.Height)
	using.Flag("window.floating", "Keep the window always on top.").
		Envar("AS_WINDOW_FLOATING").
		BoolVar(&this.Floating)
	using.Flag("window.fps", "Framerate of the window.").
		Envar("AS_WINDOW_FPS").
		IntVar(&this.FPS)
}
