package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"dario.cat/mergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/audio-switcher/pkg/frontend"
)

func TestConfiguration_loadFrom(t *testing.T) {
	instance := NewConfiguration()

	// yaml round-trips durations as nanosecond integers.
	err := instance.loadFrom(strings.NewReader(`
preventAutoSave: true
checkInterval: 5000000000
frontend:
  type: tray
excludedDeviceNames: "Virtual.*"
`))
	require.NoError(t, err)

	assert.True(t, instance.PreventAutoSave)
	assert.Equal(t, 5*time.Second, instance.CheckInterval)
	assert.Equal(t, frontend.TypeTray, instance.Frontend.Type)
	assert.True(t, instance.ExcludedDeviceNames.MatchString("Virtual Cable"))
}

func TestConfiguration_loadFrom_rejectsUnknownFields(t *testing.T) {
	instance := NewConfiguration()

	err := instance.loadFrom(strings.NewReader(`somethingElse: true`))
	assert.Error(t, err)
}

func TestConfiguration_saveAndLoadRoundTrip(t *testing.T) {
	before := NewConfiguration()
	before.CheckInterval = 7 * time.Second
	before.Frontend.Type = frontend.TypeTray
	before.Frontend.Window.Width = 640

	var buf bytes.Buffer
	require.NoError(t, before.saveTo(&buf))

	after := Configuration{}
	require.NoError(t, after.loadFrom(&buf))

	assert.Equal(t, before, after)
}

func TestConfiguration_flagsOverrideFile(t *testing.T) {
	fromFile := NewConfiguration()
	fromFile.CheckInterval = 5 * time.Second

	fromFlags := Configuration{}
	fromFlags.CheckInterval = 9 * time.Second

	require.NoError(t, mergo.Merge(&fromFile, fromFlags, mergo.WithOverride))
	assert.Equal(t, 9*time.Second, fromFile.CheckInterval)
}

func TestConfiguration_Validate(t *testing.T) {
	instance := NewConfiguration()
	require.NoError(t, instance.Validate())

	instance.CheckInterval = time.Millisecond
	assert.Error(t, instance.Validate())
}
