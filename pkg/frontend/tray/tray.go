package tray

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/getlantern/systray"

	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
	"github.com/blaubaer/audio-switcher/pkg/console"
	"github.com/blaubaer/audio-switcher/pkg/frontend"
)

// Tray is the system tray frontend. It mirrors the audio state onto the
// tray icon and offers switching, muting and stepping the volume through
// the menu.
//
// LogRing and LogOutput are optional; when both are set the menu offers a
// dedicated console which replays the ring before following new output.
type Tray struct {
	LogRing   *common.LogRing
	LogOutput *common.WriterFacade

	conf *Configuration
	ctrl frontend.Controller

	deviceMenu  *systray.MenuItem
	deviceItems []*systray.MenuItem
	deviceIDs   []string
	muteItem    *systray.MenuItem
	volumeUp    *systray.MenuItem
	volumeDown  *systray.MenuItem
	refreshItem *systray.MenuItem
	consoleItem *systray.MenuItem
	quitItem    *systray.MenuItem

	lastRevision uint64

	consoleMutex  sync.Mutex
	consoleCancel context.CancelFunc
}

func (this *Tray) Initialize(conf *Configuration, ctrl frontend.Controller) error {
	this.conf = conf
	this.ctrl = ctrl
	return nil
}

func (this *Tray) Run(ctx context.Context) error {
	systray.Run(func() {
		this.onReady(ctx)
	}, nil)
	return nil
}

func (this *Tray) Dispose() error {
	this.closeConsole()
	return nil
}

func (this *Tray) GetType() frontend.Type {
	return frontend.TypeTray
}

func (this *Tray) onReady(ctx context.Context) {
	systray.SetIcon(speakerIcon)
	systray.SetTitle("Audio Switcher")

	this.deviceMenu = systray.AddMenuItem("Output device", "Switch the default output device.")
	this.deviceItems = make([]*systray.MenuItem, this.conf.MaxDeviceItems)
	this.deviceIDs = make([]string, this.conf.MaxDeviceItems)
	deviceClicks := make(chan int)
	for i := range this.deviceItems {
		mi := this.deviceMenu.AddSubMenuItemCheckbox("", "", false)
		mi.Hide()
		this.deviceItems[i] = mi
		go func(index int, mi *systray.MenuItem) {
			for range mi.ClickedCh {
				deviceClicks <- index
			}
		}(i, mi)
	}

	systray.AddSeparator()
	this.muteItem = systray.AddMenuItem("Mute", "Mute or unmute the default output device.")
	this.volumeUp = systray.AddMenuItem("Volume up", "Increase the volume of the default output device.")
	this.volumeDown = systray.AddMenuItem("Volume down", "Decrease the volume of the default output device.")
	this.refreshItem = systray.AddMenuItem("Refresh", "Re-read the list of output devices.")

	systray.AddSeparator()
	if this.LogRing != nil && this.LogOutput != nil {
		this.consoleItem = systray.AddMenuItem("Show Console", "Shows the console with more information.")
	}
	this.quitItem = systray.AddMenuItem("Exit", "Exit the audio switcher.")

	this.resync(this.ctrl.Snapshot())

	go func() {
		defer systray.Quit()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		consoleClicks := noClicks
		if this.consoleItem != nil {
			consoleClicks = this.consoleItem.ClickedCh
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-this.quitItem.ClickedCh:
				log.Info("Exit clicked. Going down...")
				return
			case index := <-deviceClicks:
				this.onDeviceClicked(index)
			case <-this.muteItem.ClickedCh:
				if _, err := this.ctrl.ToggleMuted(); err != nil {
					log.WithError(err).
						Error("Cannot change mute state.")
				}
			case <-this.volumeUp.ClickedCh:
				this.stepVolume(this.conf.VolumeStep)
			case <-this.volumeDown.ClickedCh:
				this.stepVolume(-this.conf.VolumeStep)
			case <-this.refreshItem.ClickedCh:
				if _, err := this.ctrl.Refresh(); err != nil {
					log.WithError(err).
						Error("Cannot refresh devices.")
				}
			case <-consoleClicks:
				this.toggleConsole(ctx)
			case <-ticker.C:
				if snapshot := this.ctrl.Snapshot(); snapshot.Revision != this.lastRevision {
					this.resync(snapshot)
				}
			}
		}
	}()
}

var noClicks = make(chan struct{})

func (this *Tray) onDeviceClicked(index int) {
	if index >= len(this.deviceIDs) || this.deviceIDs[index] == "" {
		return
	}
	if err := this.ctrl.SetDefaultDevice(this.deviceIDs[index]); err != nil {
		log.WithError(err).
			With("device", this.deviceIDs[index]).
			Error("Cannot switch default device.")
	}
}

func (this *Tray) stepVolume(delta audio.Volume) {
	target := (this.ctrl.Snapshot().Volume + delta).Clamped()
	if err := this.ctrl.SetVolume(target); err != nil {
		log.WithError(err).
			With("volume", target).
			Error("Cannot change volume.")
	}
}

func (this *Tray) resync(snapshot audio.Snapshot) {
	this.lastRevision = snapshot.Revision

	if snapshot.Muted {
		systray.SetIcon(speakerMutedIcon)
		this.muteItem.SetTitle("Unmute")
	} else {
		systray.SetIcon(speakerIcon)
		this.muteItem.SetTitle("Mute")
	}

	tooltip := "No output device."
	if defaultDevice, ok := snapshot.Default(); ok {
		tooltip = fmt.Sprintf("%s - %v", defaultDevice.Name, snapshot.Volume)
		if snapshot.Muted {
			tooltip += " (muted)"
		}
	}
	systray.SetTooltip(tooltip)

	for i, mi := range this.deviceItems {
		if i >= len(snapshot.Devices) {
			this.deviceIDs[i] = ""
			mi.Hide()
			continue
		}
		device := snapshot.Devices[i]
		this.deviceIDs[i] = device.ID
		mi.SetTitle(device.Name)
		if device.Default {
			mi.Check()
		} else {
			mi.Uncheck()
		}
		mi.Show()
	}
	if len(snapshot.Devices) > len(this.deviceItems) {
		log.With("devices", len(snapshot.Devices)).
			With("maxDeviceItems", len(this.deviceItems)).
			Warn("More devices than menu items; some devices are not offered.")
	}
}

func (this *Tray) toggleConsole(ctx context.Context) {
	this.consoleMutex.Lock()
	defer this.consoleMutex.Unlock()

	if this.consoleCancel != nil {
		this.consoleCancel()
		this.consoleCancel = nil
		this.consoleItem.SetTitle("Show Console")
		return
	}

	cCtx, cancel := context.WithCancel(ctx)
	this.consoleCancel = cancel
	this.consoleItem.SetTitle("Hide Console")
	go this.runConsole(cCtx)
}

func (this *Tray) closeConsole() {
	this.consoleMutex.Lock()
	defer this.consoleMutex.Unlock()

	if this.consoleCancel != nil {
		this.consoleCancel()
		this.consoleCancel = nil
	}
}

func (this *Tray) runConsole(ctx context.Context) {
	c, err := console.NewConsole("Audio Switcher")
	if err != nil {
		log.WithError(err).
			Warn("Cannot create console.")
		return
	}
	defer func() { _ = c.Close() }()

	this.LogOutput.Set([]io.Writer{this.LogRing, c.Stdout}, func(_, _ []io.Writer) {
		_, _ = this.LogRing.WriteTo(c.Stdout)
	})
	defer this.LogOutput.Set([]io.Writer{this.LogRing})

	cCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.OnCtrlC = func(any) bool {
		cancel()
		return false
	}

	<-cCtx.Done()
}
