//go:build !windows && !linux

package audio

func newStack(_ *SwitchConfiguration) Stack {
	return unsupportedStack{}
}

type unsupportedStack struct{}

func (this unsupportedStack) Initialize() error                 { return ErrUnsupportedPlatform }
func (this unsupportedStack) Dispose() error                    { return nil }
func (this unsupportedStack) FindDevices() (Devices, error)     { return nil, ErrUnsupportedPlatform }
func (this unsupportedStack) SetDefaultDevice(string) error     { return ErrUnsupportedPlatform }
func (this unsupportedStack) Volume() (Volume, error)           { return 0, ErrUnsupportedPlatform }
func (this unsupportedStack) SetVolume(Volume) error            { return ErrUnsupportedPlatform }
func (this unsupportedStack) Muted() (bool, error)              { return false, ErrUnsupportedPlatform }
func (this unsupportedStack) SetMuted(bool) error               { return ErrUnsupportedPlatform }
