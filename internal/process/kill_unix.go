//go:build !windows

// Package process terminates browser process trees left behind by the
// Chrome renderer.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU children down with it. Errors are ignored;
// the launcher's own Kill runs afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
