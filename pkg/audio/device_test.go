package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blaubaer/audio-switcher/pkg/common"
)

func someDevices() Devices {
	return Devices{
		{ID: "id-speakers", Name: "Speakers (Realtek)", Index: 0, Default: true},
		{ID: "id-headset", Name: "USB Headset (Plantronics)", Index: 1},
		{ID: "id-hdmi", Name: "HDMI Output (NVIDIA)", Index: 2},
	}
}

func TestDevices_Default(t *testing.T) {
	devices := someDevices()

	actual, ok := devices.Default()
	assert.True(t, ok)
	assert.Equal(t, "id-speakers", actual.ID)

	_, ok = Devices{}.Default()
	assert.False(t, ok)
}

func TestDevices_ByID(t *testing.T) {
	devices := someDevices()

	actual, ok := devices.ByID("id-headset")
	assert.True(t, ok)
	assert.Equal(t, "USB Headset (Plantronics)", actual.Name)

	_, ok = devices.ByID("id-missing")
	assert.False(t, ok)
}

func TestDevices_ByName(t *testing.T) {
	devices := someDevices()

	actual, ok := devices.ByName("usb headset (plantronics)")
	assert.True(t, ok)
	assert.Equal(t, "id-headset", actual.ID)

	_, ok = devices.ByName("Speakers")
	assert.False(t, ok)
}

func TestDevices_Filter(t *testing.T) {
	devices := someDevices()

	actual := devices.Filter(common.Regexp{}, common.Regexp{})
	assert.Equal(t, devices, actual)

	actual = devices.Filter(common.MustNewRegexp(`Headset|Speakers`), common.Regexp{})
	assert.Equal(t, []string{"Speakers (Realtek)", "USB Headset (Plantronics)"}, actual.Names())

	actual = devices.Filter(common.Regexp{}, common.MustNewRegexp(`HDMI`))
	assert.Equal(t, []string{"Speakers (Realtek)", "USB Headset (Plantronics)"}, actual.Names())

	actual = devices.Filter(common.MustNewRegexp(`Headset`), common.MustNewRegexp(`Headset`))
	assert.Empty(t, actual)
}

func TestDevices_EqualIdentity(t *testing.T) {
	a := someDevices()
	b := someDevices()
	assert.True(t, a.EqualIdentity(b))

	b[0].Sessions = Sessions{{Pid: 42, ProcessName: "music.exe"}}
	assert.True(t, a.EqualIdentity(b))

	b[0].Default = false
	b[1].Default = true
	assert.False(t, a.EqualIdentity(b))

	assert.False(t, a.EqualIdentity(b[:2]))
}

func TestDevice_String(t *testing.T) {
	devices := someDevices()

	assert.Equal(t, "[0]* Speakers (Realtek)", devices[0].String())
	assert.Equal(t, "[1]  USB Headset (Plantronics)", devices[1].String())
}

func TestSnapshot_SameState(t *testing.T) {
	a := Snapshot{Devices: someDevices(), DefaultID: "id-speakers", Volume: 0.5}
	b := Snapshot{Devices: someDevices(), DefaultID: "id-speakers", Volume: 0.5, Revision: 7}
	assert.True(t, a.SameState(b))

	b.Muted = true
	assert.False(t, a.SameState(b))
}
