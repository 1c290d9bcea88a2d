package tray

import (
	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		MaxDeviceItems: 12,
		VolumeStep:     audio.Volume(0.05),
	}
}

type Configuration struct {
	// MaxDeviceItems limits how many devices appear in the menu. The
	// menu items are created once at startup, because systray cannot
	// remove items afterwards, only hide them.
	MaxDeviceItems int `yaml:"maxDeviceItems,omitempty" validate:"omitempty,min=1,max=64"`

	// VolumeStep is applied by the volume up/down menu items.
	VolumeStep audio.Volume `yaml:"volumeStep,omitempty" validate:"omitempty,gt=0,lte=0.5"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("tray.maxDeviceItems", "Maximum number of devices offered in the tray menu.").
		Envar("AS_TRAY_MAX_DEVICE_ITEMS").
		IntVar(&this.MaxDeviceItems)
	using.Flag("tray.volumeStep", "Volume change applied by the volume up/down menu items.").
		Envar("AS_TRAY_VOLUME_STEP").
		SetValue(&this.VolumeStep)
}
