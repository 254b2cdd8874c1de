//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

// setProcessGroup is a no-op: taskkill /T walks the tree by parent PID.
func setProcessGroup(*exec.Cmd) {}
