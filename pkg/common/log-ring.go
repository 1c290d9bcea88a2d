package common

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

var (
	ErrLineTooLong = errors.New("line too long")
)

// NewLogRing creates a ring that keeps the most recent maxLines lines of
// whatever is written to it. Lines longer than maxLineLength are rejected
// unless TruncateLongLines is set.
func NewLogRing(maxLines, maxLineLength uint32) *LogRing {
	return &LogRing{
		maxLines:      int(maxLines),
		maxLineLength: int(maxLineLength),
	}
}

type LogRing struct {
	TruncateLongLines bool

	maxLines      int
	maxLineLength int

	partial []byte
	lines   [][]byte
	start   int
	length  int

	mutex sync.RWMutex
}

func (this *LogRing) Write(p []byte) (n int, err error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	n = len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			if err := this.append(p); err != nil {
				return n - len(p), err
			}
			break
		}
		if err := this.append(p[:i]); err != nil {
			return n - len(p), err
		}
		this.commit()
		p = p[i+1:]
	}
	return n, nil
}

func (this *LogRing) append(b []byte) error {
	if len(this.partial)+len(b) > this.maxLineLength {
		if !this.TruncateLongLines {
			return ErrLineTooLong
		}
		b = b[:max(0, this.maxLineLength-len(this.partial))]
	}
	this.partial = append(this.partial, b...)
	return nil
}

func (this *LogRing) commit() {
	line := bytes.Clone(this.partial)
	this.partial = this.partial[:0]

	if this.lines == nil {
		this.lines = make([][]byte, 0, this.maxLines)
	}
	if this.length < this.maxLines {
		this.lines = append(this.lines, line)
		this.length++
		return
	}
	this.lines[this.start] = line
	this.start++
	if this.start >= this.maxLines {
		this.start = 0
	}
}

func (this *LogRing) AddLine(line []byte) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if err := this.append(line); err != nil {
		return err
	}
	this.commit()
	return nil
}

func (this *LogRing) NumberOfLines() uint32 {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return uint32(this.length)
}

// Lines returns the retained lines, oldest first.
func (this *LogRing) Lines() [][]byte {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	result := make([][]byte, 0, this.length)
	for i := 0; i < this.length; i++ {
		j := this.start + i
		if j >= this.maxLines {
			j -= this.maxLines
		}
		result = append(result, this.lines[j])
	}
	return result
}

func (this *LogRing) WriteTo(to io.Writer) (n int64, err error) {
	for _, line := range this.Lines() {
		wn, wErr := to.Write(append(line, '\n'))
		n += int64(wn)
		if wErr != nil {
			return n, wErr
		}
	}
	return n, nil
}

// A WriterFacade is an io.Writer whose targets can be swapped at runtime.
// It is used to redirect the log output between the regular stdout, the
// ring and a dedicated console without touching the logger itself.
type WriterFacade struct {
	delegates []io.Writer
	mutex     sync.RWMutex
}

func NewWriterFacade(initial ...io.Writer) *WriterFacade {
	return &WriterFacade{delegates: initial}
}

func (this *WriterFacade) Write(p []byte) (n int, err error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	n = len(p)
	for _, w := range this.delegates {
		if _, err = w.Write(p); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Set replaces the targets. whileChange callbacks are executed while the
// facade is locked, so nothing can be written between old and new targets.
func (this *WriterFacade) Set(next []io.Writer, whileChange ...func(current, next []io.Writer)) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	current := this.delegates
	for _, fn := range whileChange {
		fn(current, next)
	}
	this.delegates = next
}
