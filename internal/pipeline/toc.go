package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// DefaultTOCMarker is the name inside the <!-- ... --> comment replaced by the TOC.
const DefaultTOCMarker = "wotw_toc"

var (
	// Fenced code blocks, non-greedy across lines.
	fencedRegion = regexp.MustCompile("```[\\s\\S]*?```")

	// ATX headings of level 2 or deeper. Group 1 holds the extra '#'.
	tocHeadingPattern = regexp.MustCompile(`(?m)^##(#*)[ \t]*(.*)$`)
)

// Heading is one TOC candidate found while scanning a document.
type Heading struct {
	Depth int // 0 for ##, 1 for ###, ...
	Text  string
	Slug  string
}

// TOCInjector defines the contract for table of contents injection.
type TOCInjector interface {
	InjectTOC(ctx context.Context, content string) string
}

// TOCBuilder replaces a marker comment line with a nested list of heading links.
type TOCBuilder struct {
	marker *regexp.Regexp
}

// NewTOCBuilder creates a TOCBuilder for the given marker name.
// An empty name selects DefaultTOCMarker.
func NewTOCBuilder(marker string) *TOCBuilder {
	if marker == "" {
		marker = DefaultTOCMarker
	}
	return &TOCBuilder{
		marker: regexp.MustCompile(`[^\n]*<!--\s*?` + regexp.QuoteMeta(marker) + `\s*?-->[^\n]*`),
	}
}

// InjectTOC replaces the first marker line with the generated TOC.
// Content without a marker is returned unchanged.
func (b *TOCBuilder) InjectTOC(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	loc := b.marker.FindStringIndex(content)
	if loc == nil {
		return content
	}

	toc := RenderTOC(ExtractHeadings(content))
	return content[:loc[0]] + toc + content[loc[1]:]
}

// ExtractHeadings scans content top to bottom for ## and deeper headings,
// skipping any that start inside a fenced code block. Slugs come from a
// registry scoped to this call.
func ExtractHeadings(content string) []Heading {
	masked := fencedRegion.FindAllStringIndex(content, -1)
	registry := NewSlugRegistry()

	var headings []Heading
	for _, m := range tocHeadingPattern.FindAllStringSubmatchIndex(content, -1) {
		if insideRanges(m[0], masked) {
			continue
		}
		text := content[m[4]:m[5]]
		headings = append(headings, Heading{
			Depth: m[3] - m[2],
			Text:  text,
			Slug:  registry.MakeSlug(text),
		})
	}
	return headings
}

// RenderTOC formats headings as a markdown list, two spaces of indent per depth.
func RenderTOC(headings []Heading) string {
	var sb strings.Builder
	for _, h := range headings {
		sb.WriteString(strings.Repeat("  ", h.Depth))
		sb.WriteString("- [")
		sb.WriteString(h.Text)
		sb.WriteString("](#")
		sb.WriteString(h.Slug)
		sb.WriteString(")\n")
	}
	return sb.String()
}

// insideRanges reports whether pos falls in any [start, end) range.
// Ranges are sorted and non-overlapping, as returned by FindAllStringIndex.
func insideRanges(pos int, ranges [][]int) bool {
	for _, r := range ranges {
		if pos < r[0] {
			return false
		}
		if pos < r[1] {
			return true
		}
	}
	return false
}
