package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/blaubaer/audio-switcher/pkg/audio"
	"github.com/blaubaer/audio-switcher/pkg/common"
	"github.com/blaubaer/audio-switcher/pkg/frontend/facade"
)

var validate = func() *validator.Validate {
	result := validator.New(validator.WithRequiredStructEnabled())

	// Report yaml field names instead of Go field names.
	result.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return result
}()

func NewConfiguration() Configuration {
	return Configuration{
		PreventAutoSave: false,

		Frontend: facade.NewConfiguration(),
		Switch:   audio.NewSwitchConfiguration(),

		CheckInterval: 2 * time.Second,
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	Frontend facade.Configuration      `yaml:"frontend,omitempty"`
	Switch   audio.SwitchConfiguration `yaml:"switch,omitempty"`

	// CheckInterval is how often the audio state is re-read from the
	// operating system while a frontend is running.
	CheckInterval time.Duration `yaml:"checkInterval,omitempty" validate:"omitempty,min=100ms,max=10m"`

	IncludedDeviceNames common.Regexp `yaml:"includedDeviceNames,omitempty"`
	ExcludedDeviceNames common.Regexp `yaml:"excludedDeviceNames,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("AS_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("checkInterval", "How often the audio state is re-read from the operating system.").
		Envar("AS_CHECK_INTERVAL").
		DurationVar(&this.CheckInterval)
	using.Flag("includedDeviceNames", "Which device names should be offered for switching.").
		Envar("AS_INCLUDED_DEVICE_NAMES").
		SetValue(&this.IncludedDeviceNames)
	using.Flag("excludedDeviceNames", "Which device names should not be offered for switching.").
		Envar("AS_EXCLUDED_DEVICE_NAMES").
		SetValue(&this.ExcludedDeviceNames)

	this.Frontend.SetupConfiguration(using)
	this.Switch.SetupConfiguration(using)
}

func (this *Configuration) Validate() error {
	if err := validate.Struct(this); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(this)
}

func (this *Configuration) loadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(this)
}

func (this *Configuration) saveToFile(fn string) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}

	return nil
}
