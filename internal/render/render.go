// Package render runs the template pass over post sources.
//
// Post sources use Jinja syntax and are rendered with pongo2. Besides the
// per-post variables (post_number, current_tag) every template can call:
//
//	include_with_default(tag, path[, language])  fenced file at a revision
//	highlight_block(content[, language])         inline-styled HTML code
//	num2words(n)                                 English words, "one hundred and five"
//	run_bash(arg, ...)                           command transcript
//	today([format])                              build date, e.g. today("long")
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/divan/num2words"
	"github.com/flosch/pongo2/v6"

	"github.com/alnah/go-postbuild/internal/dateutil"
	"github.com/alnah/go-postbuild/internal/include"
	"github.com/alnah/go-postbuild/internal/pipeline"
)

// disableAutoescape turns off HTML escaping for every pongo2 template in the
// process. The setting is package-wide in pongo2, so it is applied once, on
// first renderer creation.
var disableAutoescape sync.Once

// Data holds the per-post variables exposed to a template.
type Data struct {
	PostNumber int
	CurrentTag string
}

// Renderer abstracts the template engine.
type Renderer interface {
	Render(ctx context.Context, name string, data Data) (string, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*PongoRenderer)(nil)

// PongoRenderer renders templates from one directory with pongo2.
type PongoRenderer struct {
	set         *pongo2.TemplateSet
	includer    *include.Includer
	highlighter *pipeline.Highlighter
	shell       *ShellRunner
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a PongoRenderer.
type Option func(*PongoRenderer)

// WithIncluder sets the resolver behind include_with_default.
func WithIncluder(inc *include.Includer) Option {
	return func(r *PongoRenderer) { r.includer = inc }
}

// WithHighlighter sets the highlighter behind highlight_block.
func WithHighlighter(h *pipeline.Highlighter) Option {
	return func(r *PongoRenderer) { r.highlighter = h }
}

// WithShell sets the runner behind run_bash.
func WithShell(s *ShellRunner) Option {
	return func(r *PongoRenderer) { r.shell = s }
}

// WithClock sets the time source behind today.
func WithClock(now func() time.Time) Option {
	return func(r *PongoRenderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger for helper calls.
func WithLogger(logger *slog.Logger) Option {
	return func(r *PongoRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewPongoRenderer creates a renderer for templates under templateDir.
// Output is not HTML-escaped: posts are markdown.
func NewPongoRenderer(templateDir string, opts ...Option) (*PongoRenderer, error) {
	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateDir, templateDir)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateDir, err)
	}
	disableAutoescape.Do(func() { pongo2.SetAutoescape(false) })

	r := &PongoRenderer{
		set:         pongo2.NewSet("posts", loader),
		includer:    include.NewForRepo("", ""),
		highlighter: pipeline.NewHighlighter(""),
		shell:       &ShellRunner{},
		now:         time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render executes the named template. Errors raised by helper functions are
// kept in the chain so callers can match them with errors.Is.
func (r *PongoRenderer) Render(ctx context.Context, name string, data Data) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tpl, err := r.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}

	var helperErr error
	keep := func(err error) error {
		if err != nil && helperErr == nil {
			helperErr = err
		}
		return err
	}

	out, err := tpl.Execute(pongo2.Context{
		"post_number": data.PostNumber,
		"current_tag": data.CurrentTag,

		"include_with_default": func(tag, path string, language ...string) (string, error) {
			block, err := r.includer.Include(ctx, include.Directive{
				Tag:      tag,
				Path:     path,
				Language: first(language),
			})
			return block, keep(err)
		},
		"highlight_block": func(content string, language ...string) (string, error) {
			html, err := r.highlighter.Highlight(content, first(language))
			return html, keep(err)
		},
		"num2words": num2words.ConvertAnd,
		"run_bash": func(args ...string) (string, error) {
			r.logger.Debug("running command", "post", name, "args", args)
			transcript, err := r.shell.Run(ctx, args...)
			return transcript, keep(err)
		},
		"today": func(format ...string) (string, error) {
			date, err := dateutil.Format(r.now(), first(format))
			return date, keep(err)
		},
	})
	if err != nil {
		if helperErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrRender, name, helperErr)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return out, nil
}

// first returns the first optional argument, or "".
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
