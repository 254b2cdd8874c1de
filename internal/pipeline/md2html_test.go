package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		input    string
		contains []string
	}{
		{
			name:     "document wrapper and escaped title",
			title:    "post-1 <draft>",
			input:    "## Hello\n\nWorld",
			contains: []string{"<!DOCTYPE html>", "<title>post-1 &lt;draft&gt;</title>", "<h2", "Hello</h2>"},
		},
		{
			name:     "fenced code highlighted inline",
			input:    "```go\nfunc main() {}\n```\n",
			contains: []string{"<pre", "style="},
		},
		{
			name:     "raw html passes through",
			input:    "<div class=\"note\">kept</div>\n",
			contains: []string{"<div class=\"note\">kept</div>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	converter := NewGoldmarkConverter("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.title, tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want it to contain %q", got, want)
				}
			}
		})
	}
}

func TestGoldmarkConverter_HeadingAnchorsMatchTOC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		anchors []string
		absent  []string
	}{
		{
			name:    "punctuation and duplicates",
			input:   "<!-- wotw_toc -->\n## Section 2: Setup\n## Intro\n## Intro\n",
			anchors: []string{"sectionsetup", "intro", "intro1"},
			absent:  []string{`id="section-2-setup"`, `id="intro-1"`},
		},
		{
			name:    "top level heading does not take a slug",
			input:   "# Intro\n\n<!-- wotw_toc -->\n\n## Intro\n",
			anchors: []string{"intro"},
			absent:  []string{`<h1 id=`, `id="intro1"`},
		},
		{
			name:    "nested and closing hashes",
			input:   "<!-- wotw_toc -->\n## Usage ##\n### Flags\n## Usage\n",
			anchors: []string{"usage", "flags", "usage1"},
		},
		{
			name:    "setext and fenced headings are skipped",
			input:   "<!-- wotw_toc -->\nSetup\n-----\n\n```\n## Setup\n```\n\n## Setup\n",
			anchors: []string{"setup"},
			absent:  []string{`id="setup1"`},
		},
	}

	converter := NewGoldmarkConverter("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md := NewTOCBuilder("").InjectTOC(context.Background(), tt.input)
			got, err := converter.ToHTML(context.Background(), "post", md)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, anchor := range tt.anchors {
				if !strings.Contains(got, `href="#`+anchor+`"`) {
					t.Errorf("ToHTML() missing TOC link %q in %q", anchor, got)
				}
				if !strings.Contains(got, `id="`+anchor+`"`) {
					t.Errorf("ToHTML() missing heading id %q in %q", anchor, got)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("ToHTML() = %q, want no %q", got, unwanted)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CustomPage(t *testing.T) {
	t.Parallel()

	page, err := ParsePage(`<main data-title="{{.Title}}"><style>{{.CSS}}</style>{{.Body}}</main>`)
	if err != nil {
		t.Fatalf("ParsePage() unexpected error: %v", err)
	}

	c := NewGoldmarkConverter("", WithPage(page), WithStylesheet("body { margin: 0 }"))
	got, err := c.ToHTML(context.Background(), "post-1", "text")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	for _, want := range []string{`<main data-title="post-1">`, "body { margin: 0 }", "<p>text</p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML() = %q, want it to contain %q", got, want)
		}
	}
	if strings.Contains(got, "<!DOCTYPE html>") {
		t.Errorf("ToHTML() = %q, want custom page instead of default", got)
	}
}

func TestParsePage_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParsePage("{{.Body"); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("ParsePage() error = %v, want ErrInvalidPage", err)
	}
}

func TestGoldmarkConverter_DefaultPageWithoutCSS(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter("").ToHTML(context.Background(), "t", "x")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}
	if strings.Contains(got, "<style>") {
		t.Errorf("ToHTML() = %q, want no <style> without a stylesheet", got)
	}
}

func TestGoldmarkConverter_ToHTML_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter("").ToHTML(ctx, "t", "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
