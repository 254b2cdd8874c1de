package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled patterns for whitespace cleanup.
var (
	// Two or more newlines in a row, i.e. one or more blank lines.
	blankLineRun = regexp.MustCompile(`\n{2,}`)
)

// paddedClosingFence is a fence line with a blank line on both sides.
const (
	paddedClosingFence = "\n\n```\n\n"
	tightClosingFence  = "\n```\n\n"
)

// WhitespaceNormalizer defines the contract for the final cleanup pass.
type WhitespaceNormalizer interface {
	Normalize(ctx context.Context, content string) string
}

// BlankLineNormalizer removes blank lines left behind by template tags.
type BlankLineNormalizer struct{}

// Normalize collapses blank line runs and tightens spacing before closing
// fences. Running it on its own output is a no-op.
func (n *BlankLineNormalizer) Normalize(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = collapseBlankLines(content)
	content = tightenClosingFences(content)
	return content
}

// collapseBlankLines reduces any run of blank lines to exactly one.
func collapseBlankLines(content string) string {
	return blankLineRun.ReplaceAllString(content, "\n\n")
}

// tightenClosingFences drops the blank line before a fence that is itself
// followed by a blank line. Repeats until stable: back-to-back fences only
// line up for a second match after the first one is rewritten.
func tightenClosingFences(content string) string {
	for strings.Contains(content, paddedClosingFence) {
		content = strings.ReplaceAll(content, paddedClosingFence, tightClosingFence)
	}
	return content
}
