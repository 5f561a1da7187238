// Package launch hands bookmark targets (URLs, programs, files) to the
// platform opener without waiting for them.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vidyasagar/deskup/internal/logging"
)

var (
	// ErrUnsupported is returned on platforms without a known opener.
	ErrUnsupported = errors.New("launching is not supported on this platform")

	// ErrEmptyTarget is returned for a blank bookmark target.
	ErrEmptyTarget = errors.New("empty target")
)

// Error reports a target that could not be started.
type Error struct {
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch %q: %v", e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CommandFunc builds the command that opens target.
type CommandFunc func(target string) (*exec.Cmd, error)

// Launcher starts targets with a platform command.
type Launcher struct {
	command CommandFunc
}

// New returns a Launcher using the platform opener.
func New() *Launcher {
	return &Launcher{command: Command}
}

// NewWith returns a Launcher using fn to build commands.
func NewWith(fn CommandFunc) *Launcher {
	return &Launcher{command: fn}
}

// Launch starts target and returns once the process is running. The child
// is reaped in the background.
func (l *Launcher) Launch(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return &Error{Target: target, Err: ErrEmptyTarget}
	}

	cmd, err := l.command(target)
	if err != nil {
		return &Error{Target: target, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &Error{Target: target, Err: err}
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Debug("opener exited", "target", target, "err", err)
		}
	}()

	logging.Info("launched", "target", target, "cmd", cmd.Path)
	return nil
}

var defaultLauncher = New()

// Launch opens target with the platform opener.
func Launch(target string) error {
	return defaultLauncher.Launch(target)
}
