package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	postbuild "github.com/alnah/go-postbuild"
	"github.com/alnah/go-postbuild/internal/assets"
	"github.com/alnah/go-postbuild/internal/config"
	"github.com/alnah/go-postbuild/internal/hints"
	"github.com/alnah/go-postbuild/internal/include"
	"github.com/alnah/go-postbuild/internal/pipeline"
	"github.com/alnah/go-postbuild/internal/render"
)

// Compiler is the interface for the compilation service.
type Compiler interface {
	CompileAll(ctx context.Context, templateDir, buildDir string) ([]postbuild.Result, error)
}

// Compile-time interface implementation check.
var _ Compiler = (*postbuild.Compiler)(nil)

// runBuild compiles every post described by flags and config.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags("build", args, env.Stderr, printBuildUsage)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(positional, " "))
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	compiler, err := newCompiler(cfg, logger, env)
	if err != nil {
		return err
	}

	return executeBuild(ctx, compiler, cfg, logger, env)
}

// loadConfig reads the config named by --config (defaults otherwise),
// applies flag overrides and validates the result.
func loadConfig(flags *buildFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name := flags.common.config; name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCompiler wires the renderer helpers, the HTML export theme and the
// compiler from cfg.
func newCompiler(cfg *config.Config, logger *slog.Logger, env *Environment) (*postbuild.Compiler, error) {
	includer := include.NewForRepo(cfg.Include.Root, cfg.Include.Git, include.WithLogger(logger))
	highlighter := pipeline.NewHighlighter(cfg.Highlight.Style)
	shell := &render.ShellRunner{Dir: cfg.Include.Root}

	factory := func(templateDir string) (render.Renderer, error) {
		return render.NewPongoRenderer(templateDir,
			render.WithIncluder(includer),
			render.WithHighlighter(highlighter),
			render.WithShell(shell),
			render.WithClock(env.Now),
			render.WithLogger(logger),
		)
	}

	opts := []postbuild.Option{
		postbuild.WithRendererFactory(factory),
		postbuild.WithTOCMarker(cfg.TOC.Marker),
		postbuild.WithTemplateExt(cfg.Templates.Extension),
		postbuild.WithLogger(logger),
	}
	if cfg.Build.HTML {
		exportOpts, err := loadExportTheme(cfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, postbuild.WithHTMLExport(cfg.Highlight.Style, exportOpts...))
	}
	return postbuild.NewCompiler(opts...), nil
}

// loadExportTheme resolves the HTML page shell and stylesheet, preferring
// files in build.assets over the built-in themes.
func loadExportTheme(cfg *config.Config, logger *slog.Logger) ([]pipeline.ConverterOption, error) {
	resolver, err := assets.NewAssetResolver(cfg.Build.Assets)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	theme, err := assets.LoadTheme(resolver, cfg.Build.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	page, err := pipeline.ParsePage(theme.Page)
	if err != nil {
		return nil, fmt.Errorf("loading theme %s: %w", theme.Name, err)
	}

	logger.Debug("export theme loaded", "theme", theme.Name, "custom", resolver.HasCustomLoader())
	return []pipeline.ConverterOption{
		pipeline.WithPage(page),
		pipeline.WithStylesheet(theme.CSS),
	}, nil
}

// executeBuild runs the compiler and reports the outcome.
func executeBuild(ctx context.Context, c Compiler, cfg *config.Config, logger *slog.Logger, env *Environment) error {
	start := env.Now()

	results, err := c.CompileAll(ctx, cfg.Templates.Dir, cfg.Build.Dir)
	if err != nil {
		logger.Debug("build stopped", "compiled", len(results))
		return withHints(err, cfg)
	}

	logger.Info("build complete",
		"posts", len(results),
		"dir", cfg.Build.Dir,
		"duration", env.Now().Sub(start).Round(time.Millisecond))
	return nil
}

// withHints appends an actionable hint for errors users can fix themselves.
func withHints(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, postbuild.ErrTemplateDir):
		hint = hints.ForTemplateDir()
	case errors.Is(err, include.ErrIncludeRead):
		hint = hints.ForIncludeRead(cfg.Include.Git)
	case errors.Is(err, postbuild.ErrResetBuildDir):
		hint = hints.ForBuildDir()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
