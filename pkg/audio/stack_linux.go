package audio

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/auroralaboratories/pulse"
)

func newStack(conf *SwitchConfiguration) Stack {
	return &stack{conf: conf}
}

type stack struct {
	conf *SwitchConfiguration

	conn  *pulse.Conn
	mutex sync.RWMutex
}

func (this *stack) Initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.conn != nil {
		return nil
	}

	conn, err := pulse.New("audio-switcher")
	if err != nil {
		return fmt.Errorf("cannot connect to PulseAudio: %w", err)
	}

	this.conn = conn
	return nil
}

func (this *stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.conn == nil {
		return nil
	}

	this.conn.Stop()
	this.conn.Destroy()
	this.conn = nil

	return nil
}

func (this *stack) FindDevices() (Devices, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	conn := this.conn
	if conn == nil {
		return nil, ErrNotInitialized
	}

	info, err := conn.GetServerInfo()
	if err != nil {
		return nil, fmt.Errorf("cannot get PulseAudio server info: %w", err)
	}

	sinks, err := conn.GetSinks()
	if err != nil {
		return nil, fmt.Errorf("cannot get PulseAudio sinks: %w", err)
	}

	inputs, err := conn.GetSinkInputs()
	if err != nil {
		return nil, fmt.Errorf("cannot get PulseAudio sink inputs: %w", err)
	}

	result := make(Devices, 0, len(sinks))
	for i, sink := range sinks {
		name := sink.Description
		if name == "" {
			name = sink.Name
		}
		device := Device{
			ID:      sink.Name,
			Name:    name,
			Index:   uint32(i),
			Default: sink.Name == info.DefaultSinkName,
		}
		for _, input := range inputs {
			if input.SinkIndex != sink.Index {
				continue
			}
			device.Sessions = append(device.Sessions, Session{
				Pid:         uint32(input.P(`application.process.id`).Int()),
				ProcessName: input.P(`application.name`).String(),
			})
		}
		result = append(result, device)
	}

	return result, nil
}

func (this *stack) SetDefaultDevice(id string) error {
	switch this.conf.Command {
	case SwitchCommandCmdlets, SwitchCommandSoundVolumeView:
		return fmt.Errorf("%w: %v is only available on Windows", ErrNoSwitchTool, this.conf.Command)
	}

	this.mutex.RLock()
	defer this.mutex.RUnlock()

	conn := this.conn
	if conn == nil {
		return ErrNotInitialized
	}

	if _, err := this.defaultSinkOrNamed(conn, id); err != nil {
		return err
	}

	if err := conn.SetDefaultSink(id); err != nil {
		return fmt.Errorf("cannot switch default sink to %s: %w", id, err)
	}
	return nil
}

func (this *stack) Volume() (Volume, error) {
	sink, err := this.defaultSink()
	if err != nil {
		return 0, err
	}
	return Volume(sink.VolumeFactor).Clamped(), nil
}

// The pulse client library only implements reading volume and mute state,
// so the setters go through pactl.
func (this *stack) SetVolume(v Volume) error {
	sink, err := this.defaultSink()
	if err != nil {
		return err
	}
	if out, err := exec.Command("pactl", "set-sink-volume", sink.Name, v.Clamped().String()).CombinedOutput(); err != nil {
		return fmt.Errorf("cannot set volume of sink %s to %v: %w; output: %s", sink.Name, v, err, string(out))
	}
	return nil
}

func (this *stack) Muted() (bool, error) {
	sink, err := this.defaultSink()
	if err != nil {
		return false, err
	}
	return sink.Muted, nil
}

func (this *stack) SetMuted(muted bool) error {
	sink, err := this.defaultSink()
	if err != nil {
		return err
	}
	flag := "0"
	if muted {
		flag = "1"
	}
	if out, err := exec.Command("pactl", "set-sink-mute", sink.Name, flag).CombinedOutput(); err != nil {
		return fmt.Errorf("cannot set mute state of sink %s to %v: %w; output: %s", sink.Name, muted, err, string(out))
	}
	return nil
}

func (this *stack) defaultSink() (*pulse.Sink, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	conn := this.conn
	if conn == nil {
		return nil, ErrNotInitialized
	}

	return this.defaultSinkOrNamed(conn, "")
}

// defaultSinkOrNamed resolves the sink with the given name, or the current
// default sink if name is empty.
func (this *stack) defaultSinkOrNamed(conn *pulse.Conn, name string) (*pulse.Sink, error) {
	if name == "" {
		info, err := conn.GetServerInfo()
		if err != nil {
			return nil, fmt.Errorf("cannot get PulseAudio server info: %w", err)
		}
		name = info.DefaultSinkName
	}

	sinks, err := conn.GetSinks()
	if err != nil {
		return nil, fmt.Errorf("cannot get PulseAudio sinks: %w", err)
	}
	for _, sink := range sinks {
		if sink.Name == name {
			return sink, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
}
