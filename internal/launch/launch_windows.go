//go:build windows

package launch

import "os/exec"

// Command opens target through the shell's start builtin. The empty
// argument is the window title, so quoted targets are not taken as one.
func Command(target string) (*exec.Cmd, error) {
	return exec.Command("cmd", "/C", "start", "", target), nil
}
