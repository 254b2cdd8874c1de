package include

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-postbuild/internal/process"
)

// DefaultGitBinary is the executable used for revision lookups.
const DefaultGitBinary = "git"

// ContentSource retrieves a file's bytes for a revision tag.
type ContentSource interface {
	Content(ctx context.Context, tag, relPath string) ([]byte, error)
}

// Compile-time interface implementation checks.
var (
	_ ContentSource = (*GitSource)(nil)
	_ ContentSource = (*LocalSource)(nil)
)

// GitSource reads files as they existed at a revision via `git show`.
type GitSource struct {
	RepoRoot string // working directory for git; empty = current directory
	Binary   string // empty = DefaultGitBinary
}

// Content runs `git show <tag>:<path>`. Diagnostics are discarded; any
// failure, including a missing git binary, is reported as ErrRevisionNotFound.
func (s *GitSource) Content(ctx context.Context, tag, relPath string) ([]byte, error) {
	binary := s.Binary
	if binary == "" {
		binary = DefaultGitBinary
	}

	cmd := process.Command(ctx, binary, "show", tag+":"+filepath.ToSlash(relPath))
	cmd.Dir = s.RepoRoot

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s:%s: %v", ErrRevisionNotFound, tag, relPath, err)
	}
	return stdout.Bytes(), nil
}

// LocalSource reads the current copy of a file from the working tree.
// The tag is ignored.
type LocalSource struct {
	Root string // repository root; empty = current directory
}

// Content reads Root/relPath.
func (s *LocalSource) Content(_ context.Context, _, relPath string) ([]byte, error) {
	path := filepath.Join(s.Root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the post author
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncludeRead, err)
	}
	return data, nil
}
