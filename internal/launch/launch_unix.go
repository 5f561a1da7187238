//go:build linux || freebsd || openbsd || netbsd || dragonfly

package launch

import "os/exec"

// Command opens target with xdg-open.
func Command(target string) (*exec.Cmd, error) {
	return exec.Command("xdg-open", target), nil
}
