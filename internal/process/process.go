// Package process runs helper subprocesses (git, shell transcripts) so that
// cancelling the build takes their whole process tree down with them.
package process

import (
	"context"
	"os/exec"
)

// Command returns an exec.Cmd bound to ctx. When ctx is cancelled the
// process group is killed instead of only the direct child.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	return cmd
}
