package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolume_Set(t *testing.T) {
	cases := []struct {
		plain    string
		expected Volume
	}{
		{"55", 0.55},
		{"55%", 0.55},
		{"0.55", 0.55},
		{"100", 1},
		{"0", 0},
		{"1", 0.01},
		{"1.0", 1},
		{" 42% ", 0.42},
	}
	for _, c := range cases {
		t.Run(c.plain, func(t *testing.T) {
			actual, err := ParseVolume(c.plain)
			require.NoError(t, err)
			assert.InDelta(t, float64(c.expected), float64(actual), 0.0001)
		})
	}
}

func TestVolume_Set_fails(t *testing.T) {
	for _, plain := range []string{"", "abc", "101", "-1", "1.5", "200%"} {
		t.Run(plain, func(t *testing.T) {
			_, err := ParseVolume(plain)
			assert.Error(t, err)
		})
	}
}

func TestVolume_Clamped(t *testing.T) {
	assert.Equal(t, Volume(0), Volume(-0.2).Clamped())
	assert.Equal(t, Volume(1), Volume(1.2).Clamped())
	assert.Equal(t, Volume(0.3), Volume(0.3).Clamped())
}

func TestVolume_String(t *testing.T) {
	assert.Equal(t, "55%", Volume(0.55).String())
	assert.Equal(t, "0%", Volume(-1).String())
	assert.Equal(t, "100%", Volume(2).String())
}

func TestParseAdjustment(t *testing.T) {
	absolute, err := ParseAdjustment("30")
	require.NoError(t, err)
	assert.False(t, absolute.Relative)
	assert.InDelta(t, 0.3, float64(absolute.ApplyTo(0.9)), 0.0001)

	up, err := ParseAdjustment("+5")
	require.NoError(t, err)
	assert.True(t, up.Relative)
	assert.InDelta(t, 0.55, float64(up.ApplyTo(0.5)), 0.0001)
	assert.InDelta(t, 1.0, float64(up.ApplyTo(0.98)), 0.0001)

	down, err := ParseAdjustment("-10%")
	require.NoError(t, err)
	assert.True(t, down.Relative)
	assert.True(t, down.Decrease)
	assert.InDelta(t, 0.4, float64(down.ApplyTo(0.5)), 0.0001)
	assert.InDelta(t, 0.0, float64(down.ApplyTo(0.05)), 0.0001)
}
