package audio

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"

	"github.com/blaubaer/audio-switcher/pkg/common"
)

func newStack(conf *SwitchConfiguration) Stack {
	return &stack{conf: conf}
}

type stack struct {
	conf *SwitchConfiguration

	initialized      bool
	cmdletsAvailable *bool
	mutex            sync.RWMutex
}

func (this *stack) Initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.initialized {
		return nil
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return fmt.Errorf("failed to initialize ole: %v", err)
	}

	this.initialized = true
	return nil
}

func (this *stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.initialized {
		return nil
	}

	ole.CoUninitialize()
	this.initialized = false

	return nil
}

func (this *stack) FindDevices() (Devices, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if !this.initialized {
		return nil, ErrNotInitialized
	}

	de, err := this.newDeviceEnumerator()
	if err != nil {
		return nil, err
	}
	defer de.Release()

	defaultID, err := this.defaultDeviceID(de)
	if err != nil {
		// Happens while no default device exists at all, for example
		// right after the last endpoint was unplugged.
		defaultID = ""
	}

	return this.introspectDevicesOf(de, defaultID)
}

func (this *stack) SetDefaultDevice(id string) error {
	devices, err := this.FindDevices()
	if err != nil {
		return err
	}
	if _, ok := devices.ByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}

	switch this.conf.Command {
	case SwitchCommandCmdlets:
		return this.switchViaCmdlets(id)
	case SwitchCommandSoundVolumeView:
		return this.switchViaSoundVolumeView(id)
	case SwitchCommandNative:
		return fmt.Errorf("%w: windows has no native way to switch the default output device; use %v or %v", ErrNoSwitchTool, SwitchCommandCmdlets, SwitchCommandSoundVolumeView)
	default:
		if this.hasCmdlets() {
			return this.switchViaCmdlets(id)
		}
		if err := this.switchViaSoundVolumeView(id); err != nil {
			return fmt.Errorf("cannot switch default device to %s: AudioDeviceCmdlets is not installed and SoundVolumeView did not succeed: %w", id, err)
		}
		return nil
	}
}

func (this *stack) Volume() (Volume, error) {
	var result float32
	if err := this.withDefaultEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		return aev.GetMasterVolumeLevelScalar(&result)
	}); err != nil {
		return 0, fmt.Errorf("cannot get volume of default device: %w", err)
	}
	return Volume(result).Clamped(), nil
}

func (this *stack) SetVolume(v Volume) error {
	if err := this.withDefaultEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		return aev.SetMasterVolumeLevelScalar(float32(v.Clamped()), nil)
	}); err != nil {
		return fmt.Errorf("cannot set volume of default device to %v: %w", v, err)
	}
	return nil
}

func (this *stack) Muted() (bool, error) {
	var result bool
	if err := this.withDefaultEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		return aev.GetMute(&result)
	}); err != nil {
		return false, fmt.Errorf("cannot get mute state of default device: %w", err)
	}
	return result, nil
}

func (this *stack) SetMuted(muted bool) error {
	if err := this.withDefaultEndpointVolume(func(aev *wca.IAudioEndpointVolume) error {
		return aev.SetMute(muted, nil)
	}); err != nil {
		return fmt.Errorf("cannot set mute state of default device to %v: %w", muted, err)
	}
	return nil
}

func (this *stack) newDeviceEnumerator() (*wca.IMMDeviceEnumerator, error) {
	var de *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &de); err != nil {
		return nil, fmt.Errorf("cannot create IMMDeviceEnumerator instance: %w", err)
	}
	return de, nil
}

func (this *stack) defaultDeviceID(de *wca.IMMDeviceEnumerator) (string, error) {
	var device *wca.IMMDevice
	if err := de.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return "", fmt.Errorf("cannot get default audio endpoint: %w", err)
	}
	defer device.Release()

	var id string
	if err := device.GetId(&id); err != nil {
		return "", fmt.Errorf("cannot get ID of default audio endpoint: %w", err)
	}
	return id, nil
}

func (this *stack) withDefaultEndpointVolume(fn func(*wca.IAudioEndpointVolume) error) error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if !this.initialized {
		return ErrNotInitialized
	}

	de, err := this.newDeviceEnumerator()
	if err != nil {
		return err
	}
	defer de.Release()

	var device *wca.IMMDevice
	if err := de.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return fmt.Errorf("cannot get default audio endpoint: %w", err)
	}
	defer device.Release()

	var aev *wca.IAudioEndpointVolume
	if err := device.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return fmt.Errorf("cannot activate IAudioEndpointVolume: %w", err)
	}
	defer aev.Release()

	return fn(aev)
}

func (this *stack) introspectDevicesOf(enumerator *wca.IMMDeviceEnumerator, defaultID string) (result Devices, _ error) {
	var collection *wca.IMMDeviceCollection
	if err := enumerator.EnumAudioEndpoints(wca.ERender, wca.DEVICE_STATE_ACTIVE, &collection); err != nil {
		return nil, fmt.Errorf("cannot query IMMDevices: %w", err)
	}
	defer collection.Release()

	var count uint32
	if err := collection.GetCount(&count); err != nil {
		return nil, fmt.Errorf("cannot get count of IMMDevice collection: %w", err)
	}

	for i := uint32(0); i < count; i++ {
		device, err := this.introspectDeviceOf(collection, i, defaultID)
		if err != nil {
			return nil, err
		}
		result = append(result, device)
	}

	return
}

func (this *stack) introspectDeviceOf(collection *wca.IMMDeviceCollection, deviceIndex uint32, defaultID string) (Device, error) {
	var device *wca.IMMDevice
	if err := collection.Item(deviceIndex, &device); err != nil {
		return Device{}, fmt.Errorf("cannot get item %d of IMMDevice collection: %w", deviceIndex, err)
	}
	defer device.Release()

	return this.introspectDevice(device, deviceIndex, defaultID)
}

func (this *stack) introspectDevice(renderDevice *wca.IMMDevice, deviceIndex uint32, defaultID string) (Device, error) {
	var id string
	if err := renderDevice.GetId(&id); err != nil {
		return Device{}, fmt.Errorf("cannot get ID of device %d of IMMDevice collection: %w", deviceIndex, err)
	}

	var propertyStore *wca.IPropertyStore
	if err := renderDevice.OpenPropertyStore(wca.STGM_READ, &propertyStore); err != nil {
		return Device{}, fmt.Errorf("cannot get properties of device %d of IMMDevice collection: %w", deviceIndex, err)
	}
	defer propertyStore.Release()

	var name wca.PROPVARIANT
	if err := propertyStore.GetValue(&wca.PKEY_Device_FriendlyName, &name); err != nil {
		return Device{}, fmt.Errorf("cannot get name of device %d of IMMDevice collection: %w", deviceIndex, err)
	}

	var sessionManager *wca.IAudioSessionManager2
	if err := renderDevice.Activate(wca.IID_IAudioSessionManager2, wca.CLSCTX_ALL, nil, &sessionManager); err != nil {
		return Device{}, fmt.Errorf("cannot get session manager for device %d of IMMDevice collection: %w", deviceIndex, err)
	}
	defer sessionManager.Release()

	device := Device{
		ID:      id,
		Name:    name.String(),
		Index:   deviceIndex,
		Default: id == defaultID,
	}

	if sessions, err := device.getSessionsOfDevice(sessionManager); err != nil {
		return Device{}, err
	} else {
		device.Sessions = sessions
	}

	return device, nil
}

func (this *stack) hasCmdlets() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.cmdletsAvailable == nil {
		err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", cmdletsProbeScript()).Run()
		available := err == nil
		if _, ok := common.AsError[*exec.ExitError](err); !ok && err != nil {
			// PowerShell itself could not even be started.
			available = false
		}
		this.cmdletsAvailable = &available
	}
	return *this.cmdletsAvailable
}

func (this *stack) switchViaCmdlets(id string) error {
	if !this.hasCmdlets() {
		return fmt.Errorf("%w: the AudioDeviceCmdlets PowerShell module is not installed", ErrNoSwitchTool)
	}

	out, err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", cmdletsSetDefaultScript(id)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("cannot switch default device to %s via AudioDeviceCmdlets: %w; output: %s", id, err, string(out))
	}
	return nil
}

func (this *stack) switchViaSoundVolumeView(id string) error {
	path := this.conf.SoundVolumeViewPath
	if path == "" {
		var err error
		if path, err = exec.LookPath("SoundVolumeView.exe"); err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return fmt.Errorf("%w: SoundVolumeView.exe was not found in PATH", ErrNoSwitchTool)
			}
			return fmt.Errorf("cannot locate SoundVolumeView.exe: %w", err)
		}
	}

	out, err := exec.Command(path, "/SetDefault", id, "all").CombinedOutput()
	if err != nil {
		return fmt.Errorf("cannot switch default device to %s via SoundVolumeView: %w; output: %s", id, err, string(out))
	}
	return nil
}
