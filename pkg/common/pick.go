package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var ErrPickAborted = errors.New("selection aborted")

// PickFromTerminal prints the given options numbered to stderr and asks the
// user to pick one of them. An empty input aborts with ErrPickAborted.
func PickFromTerminal(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: nothing to select from", ErrPickAborted)
	}

	l, err := readline.NewEx(&readline.Config{
		Stdin:  os.Stdin,
		Stdout: os.Stderr,
	})
	if err != nil {
		return 0, fmt.Errorf("could not read from terminal for prompt %q: %w", prompt, err)
	}
	defer func() {
		_ = l.Close()
	}()

	for i, option := range options {
		_, _ = fmt.Fprintf(os.Stderr, "%3d) %s\n", i+1, option)
	}

	l.SetPrompt(fmt.Sprintf("%s [1-%d]: ", prompt, len(options)))
	l.ResetHistory()

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, ErrPickAborted
		}
		if err != nil {
			return 0, fmt.Errorf("could not read from terminal for prompt %q: %w", prompt, err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return 0, ErrPickAborted
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			_, _ = fmt.Fprintf(os.Stderr, "Please enter a number between 1 and %d.\n", len(options))
			continue
		}
		return n - 1, nil
	}
}
