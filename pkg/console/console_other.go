//go:build !windows

package console

import (
	"errors"
)

var ErrUnsupported = errors.New("dedicated consoles are not supported on this platform")

func NewConsole(string) (*Console, error) {
	return nil, ErrUnsupported
}

func (this *Console) Close() error {
	return nil
}
