package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	_ "github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/blaubaer/audio-switcher/pkg/app"
	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
	"github.com/blaubaer/audio-switcher/pkg/frontend"
)

func main() {
	wf := common.NewWriterFacade(os.Stderr)
	ring := common.NewLogRing(2000, 4096)
	ring.TruncateLongLines = true
	consumer.Default = consumer.NewWriter(wf)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()
	a.Frontend.Tray.LogRing = ring
	a.Frontend.Tray.LogOutput = wf

	cmd := kingpin.New("audio-switcher", "Lists the audio output devices of this machine, switches the default one and adjusts its volume.")
	a.SetupConfiguration(cmd)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("always").
		SetValue(lv.Consumer.Formatter.ColorMode)

	runCmd := cmd.Command("run", "Runs the interactive frontend.").
		Default()
	listCmd := cmd.Command("list", "Lists all active audio output devices.")
	setCmd := cmd.Command("set", "Makes a device the default audio output device.")
	setDevice := setCmd.Arg("device", "Index, name or ID of the device. If absent an interactive picker is shown.").
		String()
	volumeCmd := cmd.Command("volume", "Shows or adjusts the volume of the default output device.")
	volumeValue := volumeCmd.Arg("value", "Either an absolute value (55, 55%, 0.55) or a relative one (+5, -10%). If absent the current volume is shown.").
		String()
	muteCmd := cmd.Command("mute", "Mutes, unmutes or toggles the default output device.")
	muteState := muteCmd.Arg("state", "One of: on, off, toggle.").
		Default("toggle").
		Enum("on", "off", "toggle")
	sessionsCmd := cmd.Command("sessions", "Lists the active render sessions per device.")

	parsed := kingpin.MustParse(cmd.Parse(os.Args[1:]))

	err := func() error {
		if err := a.Initialize(); err != nil {
			return err
		}
		defer func() {
			_ = a.Dispose()
		}()

		switch parsed {
		case runCmd.FullCommand():
			return runFrontend(a, wf, ring)
		case listCmd.FullCommand():
			return runList(a)
		case setCmd.FullCommand():
			return runSet(a, *setDevice)
		case volumeCmd.FullCommand():
			return runVolume(a, *volumeValue)
		case muteCmd.FullCommand():
			return runMute(a, *muteState)
		case sessionsCmd.FullCommand():
			return runSessions(a)
		default:
			return fmt.Errorf("unknown command: %s", parsed)
		}
	}()
	cmd.FatalIfError(err, "")
}

func runFrontend(a *app.App, wf *common.WriterFacade, ring *common.LogRing) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Terminated. Going down...")
		cancel()
	}()

	if a.Configuration().Frontend.Type == frontend.TypeTray {
		// The tray runs without an own terminal; logs go into the ring
		// and are shown via the tray's console menu item on demand.
		wf.Set([]io.Writer{ring})
		defer wf.Set([]io.Writer{os.Stderr})
	}

	return a.Run(ctx)
}

func runList(a *app.App) error {
	snapshot := a.Snapshot()
	if snapshot.Devices.IsZero() {
		return fmt.Errorf("no active audio output devices found")
	}

	for _, d := range snapshot.Devices {
		fmt.Println(d)
	}
	return nil
}

func runSet(a *app.App, plain string) error {
	snapshot := a.Snapshot()
	if snapshot.Devices.IsZero() {
		return fmt.Errorf("no active audio output devices found")
	}

	device, err := resolveDevice(snapshot.Devices, plain)
	if err != nil {
		return err
	}

	if err := a.SetDefaultDevice(device.ID); err != nil {
		return err
	}

	fmt.Printf("Default output device is now: %s\n", device.Name)
	return nil
}

func resolveDevice(devices audio.Devices, plain string) (audio.Device, error) {
	if plain == "" {
		options := make([]string, len(devices))
		for i, d := range devices {
			options[i] = d.Name
			if d.Default {
				options[i] += " (current default)"
			}
		}
		i, err := common.PickFromTerminal("Select the new default output device", options)
		if err != nil {
			return audio.Device{}, err
		}
		return devices[i], nil
	}

	if i, err := strconv.ParseUint(plain, 10, 32); err == nil {
		for _, d := range devices {
			if d.Index == uint32(i) {
				return d, nil
			}
		}
		return audio.Device{}, fmt.Errorf("%w: no device with index %d", audio.ErrDeviceNotFound, i)
	}
	if d, ok := devices.ByID(plain); ok {
		return d, nil
	}
	if d, ok := devices.ByName(plain); ok {
		return d, nil
	}

	return audio.Device{}, fmt.Errorf("%w: %q; candidates are: %s",
		audio.ErrDeviceNotFound, plain, strings.Join(devices.Names(), ", "))
}

func runVolume(a *app.App, plain string) error {
	snapshot := a.Snapshot()

	if plain == "" {
		suffix := ""
		if snapshot.Muted {
			suffix = " (muted)"
		}
		fmt.Printf("%v%s\n", snapshot.Volume, suffix)
		return nil
	}

	adjustment, err := audio.ParseAdjustment(plain)
	if err != nil {
		return err
	}

	if err := a.SetVolume(adjustment.ApplyTo(snapshot.Volume)); err != nil {
		return err
	}

	fmt.Printf("%v\n", a.Snapshot().Volume)
	return nil
}

func runMute(a *app.App, state string) error {
	var muted bool
	var err error

	switch state {
	case "on":
		muted, err = true, a.SetMuted(true)
	case "off":
		muted, err = false, a.SetMuted(false)
	default:
		muted, err = a.ToggleMuted()
	}
	if err != nil {
		return err
	}

	if muted {
		fmt.Println("muted")
	} else {
		fmt.Println("unmuted")
	}
	return nil
}

func runSessions(a *app.App) error {
	snapshot := a.Snapshot()
	if snapshot.Devices.IsZero() {
		return fmt.Errorf("no active audio output devices found")
	}

	for _, d := range snapshot.Devices {
		fmt.Println(d)
		if d.Sessions.IsZero() {
			fmt.Println("  (no active sessions)")
			continue
		}
		for _, s := range d.Sessions {
			fmt.Printf("  - %v\n", s)
		}
	}
	return nil
}
