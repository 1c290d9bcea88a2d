package facade

import (
	"context"
	"fmt"
	"sync"

	"github.com/blaubaer/audio-switcher/pkg/frontend"
	"github.com/blaubaer/audio-switcher/pkg/frontend/tray"
	"github.com/blaubaer/audio-switcher/pkg/frontend/window"
)

// Facade selects and drives the configured frontend. Window and Tray
// are exported so the caller can wire frontend specific plumbing (like
// the tray's log sink) before Initialize is called.
type Facade struct {
	frontend.Frontend

	Window window.Window
	Tray   tray.Tray

	lock sync.RWMutex
}

func (this *Facade) Initialize(conf *Configuration, ctrl frontend.Controller) error {
	this.lock.Lock()
	defer this.lock.Unlock()

	if this.Frontend != nil {
		return nil
	}

	switch conf.Type {
	case frontend.TypeWindow:
		if err := this.Window.Initialize(&conf.Window, ctrl); err != nil {
			return err
		}
		this.Frontend = &this.Window
	case frontend.TypeTray:
		if err := this.Tray.Initialize(&conf.Tray, ctrl); err != nil {
			return err
		}
		this.Frontend = &this.Tray
	default:
		return fmt.Errorf("unsupported frontend type: %v", conf.Type)
	}

	return nil
}

func (this *Facade) Run(ctx context.Context) error {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Frontend; v != nil {
		return v.Run(ctx)
	}
	return nil
}

func (this *Facade) Dispose() error {
	this.lock.Lock()
	defer this.lock.Unlock()

	defer func() {
		this.Frontend = nil
	}()

	if v := this.Frontend; v != nil {
		return v.Dispose()
	}
	return nil
}

func (this *Facade) GetType() frontend.Type {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Frontend; v != nil {
		return v.GetType()
	}

	return 0
}
