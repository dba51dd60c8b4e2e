package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCommand is returned when no browser command is configured.
var ErrNoCommand = errors.New("launcher: no browser command configured")

// Launcher reopens saved tabs in a browser.
type Launcher struct {
	Command string
	Args    []string

	// start runs the prepared command; replaced in tests.
	start func(cmd *exec.Cmd) error
}

// New creates a launcher for the given browser command line.
func New(command string, args ...string) *Launcher {
	return &Launcher{
		Command: command,
		Args:    args,
		start:   startDetached,
	}
}

// Open starts the browser with every URL appended to the configured
// arguments. The browser is not waited for. An empty list does nothing.
func (l *Launcher) Open(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	if strings.TrimSpace(l.Command) == "" {
		return ErrNoCommand
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	args := make([]string, 0, len(l.Args)+len(urls))
	args = append(args, l.Args...)
	args = append(args, urls...)

	// Not CommandContext: the browser must outlive the caller's context.
	cmd := exec.Command(l.Command, args...)

	start := l.start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("launcher: start %s: %w", l.Command, err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
