package facade

import (
	"github.com/blaubaer/audio-switcher/pkg/common"
	"github.com/blaubaer/audio-switcher/pkg/frontend"
	"github.com/blaubaer/audio-switcher/pkg/frontend/tray"
	"github.com/blaubaer/audio-switcher/pkg/frontend/window"
)

func NewConfiguration() Configuration {
	return Configuration{
		Type:   frontend.TypeDefault,
		Window: window.NewConfiguration(),
		Tray:   tray.NewConfiguration(),
	}
}

type Configuration struct {
	Type   frontend.Type        `yaml:"type"`
	Window window.Configuration `yaml:"window,omitempty"`
	Tray   tray.Configuration   `yaml:"tray,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("frontend", "Frontend to use. All possible values: "+frontend.AllTypes.String()).
		Envar("AS_FRONTEND").
		SetValue(&this.Type)

	this.Window.SetupConfiguration(using)
	this.Tray.SetupConfiguration(using)
}
