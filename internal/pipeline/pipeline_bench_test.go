//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkInjectTOC benchmarks heading extraction and marker substitution.
func BenchmarkInjectTOC(b *testing.B) {
	builder := NewTOCBuilder("")
	ctx := context.Background()

	for _, sections := range []int{10, 50, 200} {
		content := "<!-- wotw_toc -->\n\n" + generatePostMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = builder.InjectTOC(ctx, content)
			}
		})
	}
}

// BenchmarkNormalize benchmarks blank line cleanup on template-heavy output.
func BenchmarkNormalize(b *testing.B) {
	normalizer := &BlankLineNormalizer{}
	ctx := context.Background()
	content := strings.ReplaceAll(generatePostMarkdown(50), "\n\n", "\n\n\n\n")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = normalizer.Normalize(ctx, content)
	}
}

// BenchmarkGoldmarkToHTML benchmarks the optional HTML export.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter("")
	ctx := context.Background()

	for _, sections := range []int{1, 10, 50} {
		content := generatePostMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, "bench", content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func generatePostMarkdown(sections int) string {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("Some content with `inline code`.\n\n")
		if i%2 == 0 {
			sb.WriteString("### Details\n\n")
		}
		if i%3 == 0 {
			sb.WriteString("```go\n## not a heading\nfunc main() {}\n```\n\n")
		}
	}
	return sb.String()
}
