//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package launch

import "os/exec"

// Command has no opener on this platform.
func Command(target string) (*exec.Cmd, error) {
	return nil, ErrUnsupported
}
