package postbuild

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-postbuild/internal/fileutil"
	"github.com/alnah/go-postbuild/internal/pipeline"
	"github.com/alnah/go-postbuild/internal/render"
)

// RendererFactory builds the template renderer for one template directory.
type RendererFactory func(templateDir string) (render.Renderer, error)

// Compiler runs the post pipeline over a template directory.
type Compiler struct {
	newRenderer RendererFactory
	toc         pipeline.TOCInjector
	normalizer  pipeline.WhitespaceNormalizer
	html        pipeline.HTMLConverter // nil disables HTML export
	ext         string
	logger      *slog.Logger
}

// Result describes one compiled post.
type Result struct {
	Post       Post
	OutputPath string
	HTMLPath   string // Empty unless HTML export is enabled
	Duration   time.Duration
}

// NewCompiler creates a Compiler with the default pongo2 renderer,
// the wotw_toc marker and the .j2 template extension.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		newRenderer: defaultRendererFactory,
		toc:         pipeline.NewTOCBuilder(pipeline.DefaultTOCMarker),
		normalizer:  &pipeline.BlankLineNormalizer{},
		ext:         DefaultTemplateExt,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultRendererFactory(templateDir string) (render.Renderer, error) {
	return render.NewPongoRenderer(templateDir)
}

// CompileAll wipes buildDir and compiles every post in templateDir into it.
// Posts run in name order and the first error stops the batch. Results for
// the posts written before the failure are returned alongside the error.
func (c *Compiler) CompileAll(ctx context.Context, templateDir, buildDir string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts, err := Discover(templateDir, c.ext)
	if err != nil {
		return nil, err
	}

	renderer, err := c.newRenderer(templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateDir, err)
	}

	if inside, err := fileutil.Contains(buildDir, templateDir); err == nil && inside {
		return nil, fmt.Errorf("%w: %w: %s holds the templates in %s",
			ErrResetBuildDir, fileutil.ErrUnsafeDir, buildDir, templateDir)
	}
	if err := fileutil.ResetDir(buildDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResetBuildDir, err)
	}
	c.logger.Debug("build directory reset", "dir", buildDir, "posts", len(posts))

	results := make([]Result, 0, len(posts))
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := c.compilePost(ctx, renderer, post, buildDir)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		c.logger.Info("compiled post",
			"post", post.Name,
			"output", res.OutputPath,
			"duration", res.Duration.Round(time.Millisecond))
	}

	if len(posts) == 0 {
		c.logger.Warn("no posts found", "dir", templateDir, "pattern", postPrefix+"*"+c.ext)
	}
	return results, nil
}

// compilePost renders, post-processes and writes a single post.
func (c *Compiler) compilePost(ctx context.Context, renderer render.Renderer, post Post, buildDir string) (Result, error) {
	start := time.Now()

	text, err := renderer.Render(ctx, post.Name, render.Data{
		PostNumber: post.Number,
		CurrentTag: post.Tag,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrRender, post.Name, err)
	}

	text = strings.TrimSpace(text)
	text = c.toc.InjectTOC(ctx, text)
	text = c.normalizer.Normalize(ctx, text)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{
		Post:       post,
		OutputPath: filepath.Join(buildDir, post.OutputName),
	}
	if err := fileutil.WriteFile(res.OutputPath, text); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrWriteOutput, post.Name, err)
	}

	if c.html != nil {
		page, err := c.html.ToHTML(ctx, post.Tag, text)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrHTMLExport, post.Name, err)
		}
		res.HTMLPath = filepath.Join(buildDir, strings.TrimSuffix(post.OutputName, ".md")+".html")
		if err := fileutil.WriteFile(res.HTMLPath, page); err != nil {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrWriteOutput, post.Name, err)
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}
