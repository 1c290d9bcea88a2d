//go:build !windows

package app

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

func defaultConfigurationFile() string {
	fn, err := xdg.ConfigFile(filepath.Join("audio-switcher", "configuration.yml"))
	if err != nil {
		return "configuration.yml"
	}
	return fn
}
