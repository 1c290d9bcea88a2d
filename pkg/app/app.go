package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"dario.cat/mergo"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
	"github.com/blaubaer/audio-switcher/pkg/frontend/facade"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

// App owns the audio stack and the active frontend and implements
// frontend.Controller for it.
type App struct {
	// AudioStack can be set before Initialize to replace the platform
	// stack, mainly for tests. If nil, the platform stack is used.
	AudioStack audio.Stack

	Frontend          facade.Facade
	ConfigurationFile string

	configFromFlags Configuration
	config          Configuration

	snapshot audio.Snapshot
	mutex    sync.RWMutex
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		StringVar(&this.ConfigurationFile)
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	if err := this.config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := mergo.Merge(&this.config, this.configFromFlags, mergo.WithOverride); err != nil {
		return err
	}
	if err := this.config.Validate(); err != nil {
		return err
	}

	if this.AudioStack == nil {
		this.AudioStack = audio.NewStack(&this.config.Switch)
	}
	if err := this.AudioStack.Initialize(); err != nil {
		return err
	}

	if _, err := this.Refresh(); err != nil {
		return err
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	success = true
	return nil
}

// Run refreshes the audio state in the background and blocks inside the
// frontend until the user quits or the context is done. The frontend is
// only created here, so command line usages of App never touch it.
func (this *App) Run(ctx context.Context) error {
	if err := this.Frontend.Initialize(&this.config.Frontend, this); err != nil {
		return err
	}

	ctxInner, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			log.With("interval", this.config.CheckInterval).
				Debug("Wait until the next check...")
			select {
			case <-ctxInner.Done():
				log.Debug("Check loop interrupted.")
				return
			case <-time.After(this.config.CheckInterval):
			}

			if _, err := this.Refresh(); err != nil {
				log.WithError(err).
					Error("Cannot refresh audio state.")
			}
		}
	}()

	return this.Frontend.Run(ctxInner)
}

// Snapshot returns the last observed audio state without touching the
// operating system.
func (this *App) Snapshot() audio.Snapshot {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return this.snapshot
}

// Refresh re-reads the audio state from the operating system. The snapshot
// revision is only bumped when something observable changed.
func (this *App) Refresh() (audio.Snapshot, error) {
	allDevices, err := this.AudioStack.FindDevices()
	if err != nil {
		return audio.Snapshot{}, fmt.Errorf("cannot find audio devices: %w", err)
	}

	candidate := audio.Snapshot{
		Devices: allDevices.Filter(this.config.IncludedDeviceNames, this.config.ExcludedDeviceNames),
		TakenAt: time.Now(),
	}
	if d, ok := allDevices.Default(); ok {
		candidate.DefaultID = d.ID

		if candidate.Volume, err = this.AudioStack.Volume(); err != nil {
			return audio.Snapshot{}, fmt.Errorf("cannot read volume of device %v: %w", d, err)
		}
		if candidate.Muted, err = this.AudioStack.Muted(); err != nil {
			return audio.Snapshot{}, fmt.Errorf("cannot read mute state of device %v: %w", d, err)
		}
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.snapshot.SameState(candidate) {
		candidate.Revision = this.snapshot.Revision
	} else {
		candidate.Revision = this.snapshot.Revision + 1
		this.logTransition(this.snapshot, candidate)
	}
	this.snapshot = candidate

	return candidate, nil
}

func (this *App) logTransition(before, after audio.Snapshot) {
	if before.DefaultID != after.DefaultID {
		l := log.With("deviceId", after.DefaultID)
		if d, ok := after.Default(); ok {
			l = l.With("device", d.Name)
		}
		l.Info("Default device changed.")
	}
	if before.Muted != after.Muted {
		log.With("muted", after.Muted).
			Info("Mute state changed.")
	}
	if before.Volume != after.Volume {
		log.With("volume", after.Volume).
			Debug("Volume changed.")
	}
}

func (this *App) SetDefaultDevice(id string) error {
	snapshot := this.Snapshot()
	if _, ok := snapshot.Devices.ByID(id); !ok {
		return fmt.Errorf("%w: %q", audio.ErrDeviceNotFound, id)
	}

	if err := this.AudioStack.SetDefaultDevice(id); err != nil {
		return err
	}

	return this.refreshAfterChange()
}

func (this *App) SetVolume(v audio.Volume) error {
	if err := this.AudioStack.SetVolume(v.Clamped()); err != nil {
		return err
	}

	return this.refreshAfterChange()
}

func (this *App) SetMuted(muted bool) error {
	if err := this.AudioStack.SetMuted(muted); err != nil {
		return err
	}

	return this.refreshAfterChange()
}

func (this *App) ToggleMuted() (bool, error) {
	muted, err := this.AudioStack.Muted()
	if err != nil {
		return false, err
	}

	if err := this.SetMuted(!muted); err != nil {
		return false, err
	}

	return !muted, nil
}

func (this *App) refreshAfterChange() error {
	if _, err := this.Refresh(); err != nil {
		return fmt.Errorf("change was applied but the state could not be re-read: %w", err)
	}
	return nil
}

// Configuration returns a copy of the effective configuration. Only valid
// after Initialize.
func (this *App) Configuration() Configuration {
	return this.config
}

func (this *App) configurationFile() string {
	if v := this.ConfigurationFile; v != "" {
		return v
	}
	return defaultConfigurationFile()
}

func (this *App) saveConf(always bool) error {
	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

func (this *App) Dispose() (rErr error) {
	defer func() {
		if v := this.AudioStack; v != nil {
			if err := v.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	return this.Frontend.Dispose()
}
