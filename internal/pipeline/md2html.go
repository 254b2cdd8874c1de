package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for HTML export.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrInvalidPage    = errors.New("invalid page template")
)

// defaultPageHTML wraps Goldmark's fragment output in a complete HTML5 document.
const defaultPageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .CSS}}<style>{{.CSS}}</style>
{{end}}</head>
<body>
{{.Body}}
</body>
</html>
`

var defaultPage = template.Must(template.New("page").Parse(defaultPageHTML))

// PageData is the value a page template is executed with.
type PageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// ParsePage parses an html/template page shell. The template receives
// PageData: {{.Title}}, {{.CSS}} and {{.Body}}.
func ParsePage(src string) (*template.Template, error) {
	tmpl, err := template.New("page").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	return tmpl, nil
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// GoldmarkConverter renders compiled posts to standalone HTML for inspection.
type GoldmarkConverter struct {
	md   goldmark.Markdown
	page *template.Template
	css  string
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*GoldmarkConverter)

// WithPage sets the page shell the converted body is placed in.
func WithPage(page *template.Template) ConverterOption {
	return func(c *GoldmarkConverter) {
		if page != nil {
			c.page = page
		}
	}
}

// WithStylesheet sets the CSS embedded in the page's <style> element.
func WithStylesheet(css string) ConverterOption {
	return func(c *GoldmarkConverter) {
		c.css = css
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM and inline-styled
// code highlighting. Raw HTML is passed through because posts embed
// highlight_block output. Headings get the same anchors the TOC links to.
func NewGoldmarkConverter(styleName string, opts ...ConverterOption) *GoldmarkConverter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(styleName),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithXHTML(),
		),
	)

	c := &GoldmarkConverter{md: md, page: defaultPage}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToHTML converts Markdown content to a standalone HTML5 document.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := c.md.Convert([]byte(content), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	var out bytes.Buffer
	err := c.page.Execute(&out, PageData{
		Title: title,
		CSS:   template.CSS(c.css),          // #nosec G203 -- stylesheet comes from local assets
		Body:  template.HTML(body.String()), // #nosec G203 -- posts are trusted local content
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out.String(), nil
}

// headingAnchors sets the id of every ATX heading of level 2 or deeper to
// the slug TOCBuilder generates for it, so TOC links resolve in the page.
type headingAnchors struct{}

func (headingAnchors) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	registry := NewSlugRegistry()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level < 2 {
			return ast.WalkSkipChildren, nil
		}

		var line []byte
		if lines := heading.Lines(); lines.Len() > 0 {
			seg := lines.At(lines.Len() - 1)
			if !isATXHeading(source, seg.Start) {
				return ast.WalkSkipChildren, nil
			}
			line = seg.Value(source)
		}
		heading.SetAttributeString("id", []byte(registry.MakeSlug(string(line))))
		return ast.WalkSkipChildren, nil
	})
}

// isATXHeading reports whether the heading text starting at pos follows a
// run of '#' at the very start of its line, the only headings ExtractHeadings
// picks up.
func isATXHeading(source []byte, pos int) bool {
	i := pos - 1
	for i >= 0 && (source[i] == ' ' || source[i] == '\t') {
		i--
	}
	hashes := 0
	for i >= 0 && source[i] == '#' {
		hashes++
		i--
	}
	return hashes > 0 && (i < 0 || source[i] == '\n')
}
