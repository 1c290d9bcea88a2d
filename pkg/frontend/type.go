package frontend

import (
	"fmt"
	"strings"
)

type Type uint8

const (
	TypeWindow = Type(0)
	TypeTray   = Type(1)

	TypeDefault = TypeWindow
)

var (
	AllTypes = Types{
		TypeWindow,
		TypeTray,
	}
)

func (this *Type) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "window":
		*this = TypeWindow
		return nil
	case "tray", "systray":
		*this = TypeTray
		return nil
	default:
		return fmt.Errorf("illegal-frontend-type: %s", plain)
	}
}

func (this Type) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-frontend-type-%d", this)
	}
	return string(v)
}

func (this Type) MarshalText() (text []byte, err error) {
	switch this {
	case TypeWindow:
		return []byte("window"), nil
	case TypeTray:
		return []byte("tray"), nil
	default:
		return nil, fmt.Errorf("illegal frontend type: %d", this)
	}
}

func (this *Type) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Types []Type

func (this Types) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Types) String() string {
	return strings.Join(this.Strings(), ",")
}
