// Package include resolves embed directives into fenced code blocks.
//
// A directive names a revision tag and a repository-relative path. The file
// is looked up at that revision first; if the lookup fails for any reason
// the current working-tree copy is used instead. Only a failure of that
// second read is reported to the caller.
package include

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// Directive is one embed request from a post.
type Directive struct {
	Tag      string
	Path     string
	Language string // empty = derive from Path
}

// Includer resolves directives against a primary and a fallback source.
type Includer struct {
	primary  ContentSource
	fallback ContentSource
	logger   *slog.Logger
}

// Option configures an Includer.
type Option func(*Includer)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Includer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Includer that tries primary, then fallback.
func New(primary, fallback ContentSource, opts ...Option) *Includer {
	i := &Includer{
		primary:  primary,
		fallback: fallback,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewForRepo creates the standard Includer: git at the repository root,
// falling back to the working tree at the same root.
func NewForRepo(root, gitBinary string, opts ...Option) *Includer {
	return New(
		&GitSource{RepoRoot: root, Binary: gitBinary},
		&LocalSource{Root: root},
		opts...,
	)
}

// Include returns the directive's file as a fenced block:
//
//	```<language>
//	<content>
//	```
//
// Content is reproduced byte for byte followed by one newline.
func (i *Includer) Include(ctx context.Context, d Directive) (string, error) {
	if d.Path == "" {
		return "", ErrEmptyIncludePath
	}

	content, err := i.resolve(ctx, d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(content) + len(d.Language) + 10)
	sb.WriteString("```")
	sb.WriteString(ResolveLanguage(d.Path, d.Language))
	sb.WriteString("\n")
	sb.Write(content)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}

// resolve tries the primary source and falls back on any non-context error.
func (i *Includer) resolve(ctx context.Context, d Directive) ([]byte, error) {
	content, err := i.primary.Content(ctx, d.Tag, d.Path)
	if err == nil {
		return content, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	i.logger.Debug("revision lookup failed, using local file",
		"tag", d.Tag, "path", d.Path, "error", err)

	content, err = i.fallback.Content(ctx, d.Tag, d.Path)
	if err != nil {
		return nil, fmt.Errorf("including %s: %w", d.Path, err)
	}
	return content, nil
}

// ResolveLanguage returns hint when set, otherwise the extension of path's
// base name without its dot. A name made only of a leading dot and text
// (".gitignore") has no extension. "yml" is normalized to "yaml".
func ResolveLanguage(path, hint string) string {
	language := hint
	if language == "" {
		base := strings.TrimLeft(filepath.Base(filepath.FromSlash(path)), ".")
		language = strings.TrimPrefix(filepath.Ext(base), ".")
	}
	if language == "yml" {
		return "yaml"
	}
	return language
}
