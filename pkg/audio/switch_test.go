package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchCommand_Set(t *testing.T) {
	cases := map[string]SwitchCommand{
		"auto":               SwitchCommandAuto,
		"":                   SwitchCommandAuto,
		"cmdlets":            SwitchCommandCmdlets,
		"AudioDeviceCmdlets": SwitchCommandCmdlets,
		"soundvolumeview":    SwitchCommandSoundVolumeView,
		"SVV":                SwitchCommandSoundVolumeView,
		"native":             SwitchCommandNative,
	}
	for plain, expected := range cases {
		t.Run(plain, func(t *testing.T) {
			var actual SwitchCommand
			require.NoError(t, actual.Set(plain))
			assert.Equal(t, expected, actual)
		})
	}

	var instance SwitchCommand
	assert.Error(t, instance.Set("something-else"))
}

func TestSwitchCommand_String(t *testing.T) {
	assert.Equal(t, "auto", SwitchCommandAuto.String())
	assert.Equal(t, "soundvolumeview", SwitchCommandSoundVolumeView.String())
	assert.Equal(t, "auto,cmdlets,soundvolumeview,native", AllSwitchCommands.String())
}

func TestPsQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, psQuote("plain"))
	assert.Equal(t, `'it''s quoted'`, psQuote("it's quoted"))
	assert.Equal(t, `''''`, psQuote("'"))
	assert.Equal(t, `''`, psQuote(""))
}

func TestCmdletsSetDefaultScript(t *testing.T) {
	assert.Equal(t,
		`Set-AudioDevice -ID '{0.0.0.00000000}.{a-b-c}' | Out-Null`,
		cmdletsSetDefaultScript(`{0.0.0.00000000}.{a-b-c}`))

	// IDs never contain quotes, but names chosen by users might end up
	// here one day; the script must stay a single literal then.
	assert.Equal(t,
		`Set-AudioDevice -ID 'John''s Headset' | Out-Null`,
		cmdletsSetDefaultScript(`John's Headset`))
}
