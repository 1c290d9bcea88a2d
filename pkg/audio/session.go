package audio

import (
	"fmt"
	"strings"
)

// Session is an active render session on a device, i.e. a process that is
// currently allowed to play audio through it.
type Session struct {
	Pid         uint32 `json:"pid,omitempty" yaml:"pid,omitempty"`
	ProcessName string `json:"processName,omitempty" yaml:"processName,omitempty"`
}

func (this Session) String() string {
	if this.ProcessName == "" {
		return fmt.Sprintf("pid %d", this.Pid)
	}
	return fmt.Sprintf("%s (%d)", this.ProcessName, this.Pid)
}

type Sessions []Session

func (this Sessions) IsZero() bool {
	return len(this) <= 0
}

func (this Sessions) HasContent() bool {
	return !this.IsZero()
}

func (this Sessions) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Sessions) String() string {
	return strings.Join(this.Strings(), ", ")
}
