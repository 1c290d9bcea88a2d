package audio

import (
	"errors"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrNotInitialized      = errors.New("not initialized")
	ErrNoSwitchTool        = errors.New("no switch tool available")
)

// Stack is the platform facade to the native audio APIs. All operations are
// synchronous; Initialize has to be called before anything else and Dispose
// afterwards.
type Stack interface {
	Initialize() error
	Dispose() error

	// FindDevices enumerates all active output devices, including their
	// render sessions, with the current default device marked.
	FindDevices() (Devices, error)

	// SetDefaultDevice makes the device with the given ID the default
	// output device of the operating system.
	SetDefaultDevice(id string) error

	// Volume and Muted refer to the current default output device.
	Volume() (Volume, error)
	SetVolume(Volume) error
	Muted() (bool, error)
	SetMuted(bool) error
}

// NewStack creates the Stack for the current platform. conf configures how
// the default device is switched; it may be shared with a live
// configuration, values are read on each switch.
func NewStack(conf *SwitchConfiguration) Stack {
	return newStack(conf)
}
