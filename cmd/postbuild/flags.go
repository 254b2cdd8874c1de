package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-postbuild/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags holds the template and include locations.
type sourceFlags struct {
	templates string
	ext       string
	root      string
}

// outputFlags holds build output flags.
type outputFlags struct {
	dir    string
	html   bool
	theme  string
	assets string
}

// buildFlags holds all flags for the build and config commands.
type buildFlags struct {
	common commonFlags
	source sourceFlags
	output outputFlags
	marker string
	style  string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addSourceFlags adds template and include flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.templates, "templates", "t", "", "template directory")
	fs.StringVar(&f.ext, "ext", "", "template file extension (default \".j2\")")
	fs.StringVar(&f.root, "root", "", "repository root for included files")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "build directory (wiped on every run)")
	fs.BoolVar(&f.html, "html", false, "also write an HTML rendering of each post")
	fs.StringVar(&f.theme, "theme", "", "page theme for --html (default \"default\")")
	fs.StringVar(&f.assets, "assets", "", "directory with custom styles/ and pages/")
}

// newBuildFlagSet registers the flags shared by build and config.
// Shell completion reads the same FlagSet.
func newBuildFlagSet(name string) (*flag.FlagSet, *buildFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addOutputFlags(fs, &f.output)
	fs.StringVar(&f.marker, "marker", "", "TOC marker name (default \"wotw_toc\")")
	fs.StringVar(&f.style, "style", "", "chroma style for highlighted code")

	return fs, f
}

// parseBuildFlags parses flags for a command and returns positional args.
// A request for help is reported as flag.ErrHelp after usage is printed.
func parseBuildFlags(name string, args []string, stderr io.Writer, usage func(io.Writer)) (*buildFlags, []string, error) {
	fs, f := newBuildFlagSet(name)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}
	return f, fs.Args(), nil
}

// mergeFlags copies explicitly set flag values over the config (CLI wins).
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.source.templates != "" {
		cfg.Templates.Dir = f.source.templates
	}
	if f.source.ext != "" {
		cfg.Templates.Extension = f.source.ext
	}
	if f.source.root != "" {
		cfg.Include.Root = f.source.root
	}
	if f.output.dir != "" {
		cfg.Build.Dir = f.output.dir
	}
	if f.output.html {
		cfg.Build.HTML = true
	}
	if f.output.theme != "" {
		cfg.Build.Theme = f.output.theme
	}
	if f.output.assets != "" {
		cfg.Build.Assets = f.output.assets
	}
	if f.marker != "" {
		cfg.TOC.Marker = f.marker
	}
	if f.style != "" {
		cfg.Highlight.Style = f.style
	}
}
