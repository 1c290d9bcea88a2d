package audio

import "time"

// A Snapshot is one consistent view onto the audio state as the application
// last observed it. Revision increases whenever an observed value changed,
// so consumers can cheaply detect staleness of what they rendered last.
type Snapshot struct {
	Devices   Devices
	DefaultID string
	Volume    Volume
	Muted     bool

	Revision uint64
	TakenAt  time.Time
}

func (this Snapshot) Default() (Device, bool) {
	return this.Devices.ByID(this.DefaultID)
}

// SameState reports whether the other snapshot describes the same observed
// audio state, ignoring Revision and TakenAt.
func (this Snapshot) SameState(other Snapshot) bool {
	return this.DefaultID == other.DefaultID &&
		this.Volume == other.Volume &&
		this.Muted == other.Muted &&
		this.Devices.EqualIdentity(other.Devices)
}
