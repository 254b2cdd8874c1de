package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// ErrHighlight indicates syntax highlighting failed.
var ErrHighlight = errors.New("syntax highlighting failed")

// Highlighter renders code as HTML with inline styles, so the markup
// survives publishing platforms that strip <style> blocks.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for a chroma style name.
// Unknown names fall back to chroma's default style.
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
}

// Highlight returns content as a highlighted <pre> block. The lexer is
// chosen by language name, then by content analysis, then plain text.
func (h *Highlighter) Highlight(content, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return sb.String(), nil
}
