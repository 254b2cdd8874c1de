package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-postbuild/internal/config"
)

func TestParseBuildFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-c", "site",
		"-t", "posts/templates",
		"-o", "posts/build",
		"--ext", ".jinja",
		"--root", "..",
		"--marker", "toc",
		"--style", "dracula",
		"--html",
		"--theme", "plain",
		"--assets", "themes",
		"-q", "-v",
		"extra",
	}

	f, positional, err := parseBuildFlags("build", args, &bytes.Buffer{}, printBuildUsage)
	if err != nil {
		t.Fatalf("parseBuildFlags() unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"config", f.common.config, "site"},
		{"templates", f.source.templates, "posts/templates"},
		{"output", f.output.dir, "posts/build"},
		{"ext", f.source.ext, ".jinja"},
		{"root", f.source.root, ".."},
		{"marker", f.marker, "toc"},
		{"style", f.style, "dracula"},
		{"theme", f.output.theme, "plain"},
		{"assets", f.output.assets, "themes"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if !f.output.html || !f.common.quiet || !f.common.verbose {
		t.Errorf("bool flags = html:%v quiet:%v verbose:%v, want all true",
			f.output.html, f.common.quiet, f.common.verbose)
	}
	if len(positional) != 1 || positional[0] != "extra" {
		t.Errorf("positional = %v, want [extra]", positional)
	}
}

func TestParseBuildFlags_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, _, err := parseBuildFlags("build", []string{"--nope"}, &stderr, printBuildUsage)
		if !errors.Is(err, ErrInvalidFlags) {
			t.Errorf("parseBuildFlags() error = %v, want ErrInvalidFlags", err)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, _, err := parseBuildFlags("build", []string{"--help"}, &stderr, printBuildUsage)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("parseBuildFlags() error = %v, want flag.ErrHelp", err)
		}
		if !strings.Contains(stderr.String(), "Usage: postbuild build") {
			t.Errorf("usage not printed, stderr = %q", stderr.String())
		}
	})
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&buildFlags{
			source: sourceFlags{templates: "src", ext: ".jinja", root: "repo"},
			output: outputFlags{dir: "out", html: true, theme: "plain", assets: "themes"},
			marker: "toc",
			style:  "dracula",
		}, cfg)

		if cfg.Templates.Dir != "src" || cfg.Templates.Extension != ".jinja" {
			t.Errorf("templates = %+v", cfg.Templates)
		}
		if cfg.Include.Root != "repo" {
			t.Errorf("include.root = %q, want %q", cfg.Include.Root, "repo")
		}
		if cfg.Build.Dir != "out" || !cfg.Build.HTML || cfg.Build.Theme != "plain" || cfg.Build.Assets != "themes" {
			t.Errorf("build = %+v", cfg.Build)
		}
		if cfg.TOC.Marker != "toc" {
			t.Errorf("toc.marker = %q, want %q", cfg.TOC.Marker, "toc")
		}
		if cfg.Highlight.Style != "dracula" {
			t.Errorf("highlight.style = %q, want %q", cfg.Highlight.Style, "dracula")
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Build.HTML = true
		cfg.TOC.Marker = "custom"
		mergeFlags(&buildFlags{}, cfg)

		want := config.DefaultConfig()
		want.Build.HTML = true
		want.TOC.Marker = "custom"
		if *cfg != *want {
			t.Errorf("config = %+v, want %+v", *cfg, *want)
		}
	})
}
