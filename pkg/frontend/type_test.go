package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Set(t *testing.T) {
	var instance Type

	require.NoError(t, instance.Set("tray"))
	assert.Equal(t, TypeTray, instance)

	require.NoError(t, instance.Set("Window"))
	assert.Equal(t, TypeWindow, instance)

	require.NoError(t, instance.Set("systray"))
	assert.Equal(t, TypeTray, instance)

	assert.Error(t, instance.Set("gui"))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "window", TypeWindow.String())
	assert.Equal(t, "tray", TypeTray.String())
	assert.Equal(t, "window,tray", AllTypes.String())
}

func TestType_marshalling(t *testing.T) {
	text, err := TypeTray.MarshalText()
	require.NoError(t, err)

	var restored Type
	require.NoError(t, restored.UnmarshalText(text))
	assert.Equal(t, TypeTray, restored)
}
