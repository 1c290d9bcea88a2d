package console

import (
	"os"
)

// Console represents a dedicated terminal attached to this process, used
// to show the live log output of a windowless frontend on demand.
type Console struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	StdinMode  uint32
	StdoutMode uint32
	StderrMode uint32

	// OnCtrlC is called when the user hits Ctrl+C or closes the console
	// window. Return true to let the default handling continue.
	OnCtrlC func(event any) bool
}

func (this *Console) Read(p []byte) (n int, err error) {
	return this.Stdin.Read(p)
}

func (this *Console) Write(p []byte) (n int, err error) {
	return this.Stdout.Write(p)
}

func (this *Console) onCtrlC(event any) bool {
	if v := this.OnCtrlC; v != nil {
		return v(event)
	}
	return true
}
