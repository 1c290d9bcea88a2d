package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexp_Set(t *testing.T) {
	var instance Regexp

	require.NoError(t, instance.Set(`^Speakers`))
	assert.True(t, instance.HasContent())
	assert.Equal(t, `^Speakers`, instance.String())

	require.NoError(t, instance.Set(""))
	assert.True(t, instance.IsZero())

	assert.Error(t, instance.Set(`^(`))
}

func TestRegexp_MatchString(t *testing.T) {
	instance := MustNewRegexp(`(?i)headset|headphones`)

	assert.True(t, instance.MatchString("USB Headset (Plantronics)"))
	assert.True(t, instance.MatchString("My Headphones"))
	assert.False(t, instance.MatchString("Speakers (Realtek)"))
}

func TestRegexp_MatchString_empty(t *testing.T) {
	var instance Regexp

	assert.True(t, instance.MatchString(""))
	assert.False(t, instance.MatchString("anything"))
}

func TestRegexp_marshalling(t *testing.T) {
	instance := MustNewRegexp(`^HDMI`)

	text, err := instance.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, `^HDMI`, string(text))

	var restored Regexp
	require.NoError(t, restored.UnmarshalText(text))
	assert.Equal(t, instance.String(), restored.String())
}
