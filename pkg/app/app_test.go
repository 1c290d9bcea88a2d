package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
)

type fakeStack struct {
	devices   audio.Devices
	defaultID string
	volume    audio.Volume
	muted     bool

	findErr error
}

func (this *fakeStack) Initialize() error { return nil }
func (this *fakeStack) Dispose() error    { return nil }

func (this *fakeStack) FindDevices() (audio.Devices, error) {
	if this.findErr != nil {
		return nil, this.findErr
	}
	result := make(audio.Devices, len(this.devices))
	for i, v := range this.devices {
		v.Default = v.ID == this.defaultID
		result[i] = v
	}
	return result, nil
}

func (this *fakeStack) SetDefaultDevice(id string) error {
	if _, ok := this.devices.ByID(id); !ok {
		return audio.ErrDeviceNotFound
	}
	this.defaultID = id
	return nil
}

func (this *fakeStack) Volume() (audio.Volume, error) { return this.volume, nil }
func (this *fakeStack) SetVolume(v audio.Volume) error {
	this.volume = v
	return nil
}
func (this *fakeStack) Muted() (bool, error) { return this.muted, nil }
func (this *fakeStack) SetMuted(muted bool) error {
	this.muted = muted
	return nil
}

func newTestApp(stack *fakeStack) *App {
	result := NewApp()
	result.AudioStack = stack
	return result
}

func someFakeStack() *fakeStack {
	return &fakeStack{
		devices: audio.Devices{
			{ID: "id-a", Name: "Speakers", Index: 0},
			{ID: "id-b", Name: "Headphones", Index: 1},
			{ID: "id-c", Name: "Monitor", Index: 2},
		},
		defaultID: "id-a",
		volume:    0.5,
	}
}

func TestApp_Refresh_bumpsRevisionOnlyOnChange(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)

	s1, err := instance.Refresh()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s1.Revision)
	assert.Equal(t, "id-a", s1.DefaultID)
	assert.Equal(t, audio.Volume(0.5), s1.Volume)

	s2, err := instance.Refresh()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s2.Revision)

	stack.volume = 0.75
	s3, err := instance.Refresh()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s3.Revision)
	assert.Equal(t, audio.Volume(0.75), s3.Volume)
}

func TestApp_Refresh_appliesDeviceFilter(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	instance.config.ExcludedDeviceNames = common.MustNewRegexp(`Monitor`)

	s, err := instance.Refresh()
	require.NoError(t, err)
	assert.Equal(t, []string{"Speakers", "Headphones"}, s.Devices.Names())
}

func TestApp_SetDefaultDevice(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	_, err := instance.Refresh()
	require.NoError(t, err)

	require.NoError(t, instance.SetDefaultDevice("id-b"))
	assert.Equal(t, "id-b", stack.defaultID)
	assert.Equal(t, "id-b", instance.Snapshot().DefaultID)
}

func TestApp_SetDefaultDevice_unknown(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	_, err := instance.Refresh()
	require.NoError(t, err)

	err = instance.SetDefaultDevice("id-x")
	assert.ErrorIs(t, err, audio.ErrDeviceNotFound)
	assert.Equal(t, "id-a", stack.defaultID)
}

func TestApp_SetDefaultDevice_rejectsFilteredDevice(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	instance.config.ExcludedDeviceNames = common.MustNewRegexp(`Monitor`)
	_, err := instance.Refresh()
	require.NoError(t, err)

	err = instance.SetDefaultDevice("id-c")
	assert.ErrorIs(t, err, audio.ErrDeviceNotFound)
}

func TestApp_SetVolume_clamps(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	_, err := instance.Refresh()
	require.NoError(t, err)

	require.NoError(t, instance.SetVolume(1.5))
	assert.Equal(t, audio.Volume(1), stack.volume)
	assert.Equal(t, audio.Volume(1), instance.Snapshot().Volume)
}

func TestApp_ToggleMuted(t *testing.T) {
	stack := someFakeStack()
	instance := newTestApp(stack)
	_, err := instance.Refresh()
	require.NoError(t, err)

	muted, err := instance.ToggleMuted()
	require.NoError(t, err)
	assert.True(t, muted)
	assert.True(t, instance.Snapshot().Muted)

	muted, err = instance.ToggleMuted()
	require.NoError(t, err)
	assert.False(t, muted)
	assert.False(t, instance.Snapshot().Muted)
}
