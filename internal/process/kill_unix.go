//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; exec.Cmd.Wait still reaps the leader.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// setProcessGroup starts cmd as the leader of a new process group so that
// anything it spawns can be killed along with it.
func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
