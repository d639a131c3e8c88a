//go:build windows

// Package process terminates browser process trees left behind by the
// Chrome renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child processes with taskkill
// (/F force, /T tree). Errors are ignored; the launcher's own Kill runs
// afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
