package frontend

import (
	"context"

	"github.com/blaubaer/audio-switcher/pkg/audio"
)

// A Frontend is one interactive surface of the application. Exactly one
// frontend is active per run, because each of them owns the main thread
// while running.
type Frontend interface {
	// Run blocks until the user quits or the context is done.
	Run(ctx context.Context) error

	Dispose() error

	GetType() Type
}

// Controller is what a Frontend operates on. All methods are safe for
// concurrent use.
type Controller interface {
	// Snapshot returns the last observed audio state without touching
	// the operating system.
	Snapshot() audio.Snapshot

	// Refresh re-queries the operating system and returns the new state.
	Refresh() (audio.Snapshot, error)

	SetDefaultDevice(id string) error
	SetVolume(v audio.Volume) error
	SetMuted(muted bool) error
	ToggleMuted() (bool, error)
}
