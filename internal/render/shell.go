package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-postbuild/internal/process"
)

// ShellRunner runs commands whose transcript is embedded in a post.
type ShellRunner struct {
	Dir string // working directory; empty = current directory
}

// Run executes args (no shell interpretation) and returns a transcript:
// "$ <args joined by spaces>\n" followed by the command's stdout.
// A non-zero exit is ErrCommandFailed.
func (s *ShellRunner) Run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", ErrEmptyCommand
	}

	line := strings.Join(args, " ")

	cmd := process.Command(ctx, args[0], args[1:]...)
	cmd.Dir = s.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s: %v: %s", ErrCommandFailed, line, err, msg)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrCommandFailed, line, err)
	}

	return "$ " + line + "\n" + stdout.String(), nil
}
