//go:build darwin

package launch

import "os/exec"

// Command opens target with open(1).
func Command(target string) (*exec.Cmd, error) {
	return exec.Command("open", target), nil
}
