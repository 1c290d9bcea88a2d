package audio

import (
	"fmt"
	"strings"

	"github.com/blaubaer/audio-switcher/pkg/common"
)

// Device is one audio output endpoint as reported by the operating system.
//
// ID is the OS-native identifier and stable across enumerations as long as
// the endpoint exists; Index is just the position within the last enumeration.
type Device struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Index    uint32   `json:"index" yaml:"index"`
	Default  bool     `json:"default,omitempty" yaml:"default,omitempty"`
	Sessions Sessions `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

func (this Device) String() string {
	marker := " "
	if this.Default {
		marker = "*"
	}
	return fmt.Sprintf("[%d]%s %s", this.Index, marker, this.Name)
}

type Devices []Device

func (this Devices) IsZero() bool {
	return len(this) <= 0
}

func (this Devices) HasContent() bool {
	return !this.IsZero()
}

func (this Devices) Default() (Device, bool) {
	for _, v := range this {
		if v.Default {
			return v, true
		}
	}
	return Device{}, false
}

func (this Devices) ByID(id string) (Device, bool) {
	for _, v := range this {
		if v.ID == id {
			return v, true
		}
	}
	return Device{}, false
}

func (this Devices) ByName(name string) (Device, bool) {
	for _, v := range this {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Device{}, false
}

func (this Devices) Names() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.Name
	}
	return result
}

// Filter returns the devices whose names pass the given include/exclude
// expressions. An empty include expression admits everything.
func (this Devices) Filter(include, exclude common.Regexp) Devices {
	result := make(Devices, 0, len(this))
	for _, v := range this {
		if include.HasContent() && !include.MatchString(v.Name) {
			continue
		}
		if exclude.HasContent() && exclude.MatchString(v.Name) {
			continue
		}
		result = append(result, v)
	}
	return result
}

// EqualIdentity reports whether both lists describe the same endpoints in
// the same order with the same default marker. Sessions are ignored.
func (this Devices) EqualIdentity(other Devices) bool {
	if len(this) != len(other) {
		return false
	}
	for i, v := range this {
		o := other[i]
		if v.ID != o.ID || v.Name != o.Name || v.Default != o.Default {
			return false
		}
	}
	return true
}
