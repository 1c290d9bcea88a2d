package audio

import (
	"fmt"
	"strings"

	"github.com/blaubaer/audio-switcher/pkg/common"
)

// SwitchCommand selects how the default output device is changed. Windows
// offers no public API for it, so the stack shells out to one of two
// external tools there; on platforms whose audio daemon supports switching
// directly (PulseAudio) everything except native is meaningless.
type SwitchCommand uint8

const (
	// SwitchCommandAuto tries cmdlets first and falls back to
	// soundvolumeview (or native where available).
	SwitchCommandAuto = SwitchCommand(0)

	// SwitchCommandCmdlets uses the AudioDeviceCmdlets PowerShell module.
	SwitchCommandCmdlets = SwitchCommand(1)

	// SwitchCommandSoundVolumeView uses NirSoft's SoundVolumeView.exe.
	SwitchCommandSoundVolumeView = SwitchCommand(2)

	// SwitchCommandNative uses the platform's own API.
	SwitchCommandNative = SwitchCommand(3)

	SwitchCommandDefault = SwitchCommandAuto
)

var (
	AllSwitchCommands = SwitchCommands{
		SwitchCommandAuto,
		SwitchCommandCmdlets,
		SwitchCommandSoundVolumeView,
		SwitchCommandNative,
	}
)

func (this *SwitchCommand) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "", "auto":
		*this = SwitchCommandAuto
		return nil
	case "cmdlets", "audiodevicecmdlets":
		*this = SwitchCommandCmdlets
		return nil
	case "soundvolumeview", "svv":
		*this = SwitchCommandSoundVolumeView
		return nil
	case "native":
		*this = SwitchCommandNative
		return nil
	default:
		return fmt.Errorf("illegal-switch-command: %s", plain)
	}
}

func (this SwitchCommand) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-switch-command-%d", this)
	}
	return string(v)
}

func (this SwitchCommand) MarshalText() (text []byte, err error) {
	switch this {
	case SwitchCommandAuto:
		return []byte("auto"), nil
	case SwitchCommandCmdlets:
		return []byte("cmdlets"), nil
	case SwitchCommandSoundVolumeView:
		return []byte("soundvolumeview"), nil
	case SwitchCommandNative:
		return []byte("native"), nil
	default:
		return nil, fmt.Errorf("illegal switch command: %d", this)
	}
}

func (this *SwitchCommand) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type SwitchCommands []SwitchCommand

func (this SwitchCommands) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this SwitchCommands) String() string {
	return strings.Join(this.Strings(), ",")
}

func NewSwitchConfiguration() SwitchConfiguration {
	return SwitchConfiguration{
		Command: SwitchCommandDefault,
	}
}

type SwitchConfiguration struct {
	Command SwitchCommand `yaml:"command"`

	// SoundVolumeViewPath points to SoundVolumeView.exe; empty means
	// lookup via PATH.
	SoundVolumeViewPath string `yaml:"soundVolumeViewPath,omitempty"`
}

func (this *SwitchConfiguration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("switch.command", "How the default output device should be switched. Possible values: "+AllSwitchCommands.String()).
		Envar("AS_SWITCH_COMMAND").
		SetValue(&this.Command)
	using.Flag("switch.soundVolumeViewPath", "Where to find SoundVolumeView.exe; empty means lookup via PATH.").
		Envar("AS_SWITCH_SOUND_VOLUME_VIEW_PATH").
		StringVar(&this.SoundVolumeViewPath)
}

// psQuote turns s into a PowerShell single-quoted string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// cmdletsProbeScript succeeds (exit code 0) if the AudioDeviceCmdlets
// module is installed.
func cmdletsProbeScript() string {
	return "if (Get-Command Set-AudioDevice -ErrorAction SilentlyContinue) { exit 0 } else { exit 1 }"
}

// cmdletsSetDefaultScript switches the default playback device to the
// endpoint with the given OS ID using the AudioDeviceCmdlets module.
func cmdletsSetDefaultScript(deviceID string) string {
	return "Set-AudioDevice -ID " + psQuote(deviceID) + " | Out-Null"
}
