package postbuild

import (
	"log/slog"

	"github.com/alnah/go-postbuild/internal/pipeline"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithRendererFactory replaces the default pongo2 renderer.
// The CLI uses it to wire includes, highlighting and shell helpers.
func WithRendererFactory(f RendererFactory) Option {
	return func(c *Compiler) {
		if f != nil {
			c.newRenderer = f
		}
	}
}

// WithTOCMarker sets the name inside the <!-- ... --> comment that is
// replaced by the table of contents.
func WithTOCMarker(marker string) Option {
	return func(c *Compiler) {
		c.toc = pipeline.NewTOCBuilder(marker)
	}
}

// WithTemplateExt sets the suffix of post sources, e.g. ".j2".
// Empty keeps the default.
func WithTemplateExt(ext string) Option {
	return func(c *Compiler) {
		if ext != "" {
			c.ext = ext
		}
	}
}

// WithHTMLExport also writes an HTML rendering of each compiled post,
// with code blocks highlighted in the given chroma style. Converter options
// replace the built-in page shell and stylesheet.
func WithHTMLExport(style string, opts ...pipeline.ConverterOption) Option {
	return func(c *Compiler) {
		c.html = pipeline.NewGoldmarkConverter(style, opts...)
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}
