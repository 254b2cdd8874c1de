package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-postbuild/internal/dateutil"
	"github.com/alnah/go-postbuild/internal/include"
)

// failingSource simulates a revision lookup that never finds anything.
type failingSource struct{}

func (failingSource) Content(context.Context, string, string) ([]byte, error) {
	return nil, include.ErrRevisionNotFound
}

// setupTemplates writes templates into a temp directory and returns it.
func setupTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func newTestRenderer(t *testing.T, templateDir, repoRoot string) *PongoRenderer {
	t.Helper()
	r, err := NewPongoRenderer(templateDir,
		WithIncluder(include.New(failingSource{}, &include.LocalSource{Root: repoRoot})),
		WithShell(&ShellRunner{Dir: repoRoot}),
		WithClock(func() time.Time { return time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("NewPongoRenderer() unexpected error: %v", err)
	}
	return r
}

func TestPongoRenderer_Render(t *testing.T) {
	t.Parallel()

	repoRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(repoRoot, "config.yml"), []byte("a: <b> & c"), 0o644); err != nil {
		t.Fatal(err)
	}

	templateDir := setupTemplates(t, map[string]string{
		"vars.md.j2":    "Post {{ post_number }} ({{ current_tag }}), the {{ num2words(post_number) }}th.",
		"include.md.j2": "{{ include_with_default(current_tag, \"config.yml\") }}",
		"lang.md.j2":    "{{ include_with_default(current_tag, \"config.yml\", \"text\") }}",
		"block.md.j2":   "{% if post_number > 1 %}later{% else %}first{% endif %}",
		"hl.md.j2":      "{{ highlight_block(\"x := 1\", \"go\") }}",
		"date.md.j2":    "{{ today() }} / {{ today(\"long\") }}",
	})

	r := newTestRenderer(t, templateDir, repoRoot)
	data := Data{PostNumber: 3, CurrentTag: "post-3-example"}

	tests := []struct {
		name     string
		template string
		expected string
		contains string
	}{
		{
			name:     "post variables and num2words",
			template: "vars.md.j2",
			expected: "Post 3 (post-3-example), the threeth.",
		},
		{
			name:     "include falls back and is not escaped",
			template: "include.md.j2",
			expected: "```yaml\na: <b> & c\n```\n",
		},
		{
			name:     "include with language",
			template: "lang.md.j2",
			expected: "```text\na: <b> & c\n```\n",
		},
		{
			name:     "control flow",
			template: "block.md.j2",
			expected: "later",
		},
		{
			name:     "today with default and preset",
			template: "date.md.j2",
			expected: "2026-03-05 / March 5, 2026",
		},
		{
			name:     "highlight block",
			template: "hl.md.j2",
			contains: "<pre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(context.Background(), tt.template, data)
			if err != nil {
				t.Fatalf("Render(%s) unexpected error: %v", tt.template, err)
			}
			if tt.contains != "" {
				if !strings.Contains(got, tt.contains) {
					t.Errorf("Render(%s) = %q, want it to contain %q", tt.template, got, tt.contains)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("Render(%s) = %q, want %q", tt.template, got, tt.expected)
			}
		})
	}
}

func TestNewPongoRenderer_ConcurrentSetup(t *testing.T) {
	t.Parallel()

	templateDir := setupTemplates(t, map[string]string{
		"raw.md.j2": "{{ current_tag }}",
	})

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := NewPongoRenderer(templateDir)
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = r.Render(context.Background(), "raw.md.j2", Data{CurrentTag: "<b> & c"})
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("renderer %d: unexpected error: %v", i, errs[i])
		}
		if results[i] != "<b> & c" {
			t.Errorf("renderer %d: Render() = %q, want unescaped %q", i, results[i], "<b> & c")
		}
	}
}

func TestPongoRenderer_Num2Words(t *testing.T) {
	t.Parallel()

	templateDir := setupTemplates(t, map[string]string{
		"words.md.j2": "{{ num2words(post_number) }}",
	})
	r := newTestRenderer(t, templateDir, t.TempDir())

	tests := []struct {
		input    int
		expected string
	}{
		{0, "zero"},
		{1, "one"},
		{13, "thirteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{105, "one hundred and five"},
		{342, "three hundred and forty-two"},
		{1000, "one thousand"},
		{1005, "one thousand and five"},
		{1105, "one thousand one hundred and five"},
		{2024, "two thousand and twenty-four"},
		{1000005, "one million and five"},
		{3000200, "three million two hundred"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), "words.md.j2", Data{PostNumber: tt.input})
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("num2words(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPongoRenderer_Render_Errors(t *testing.T) {
	t.Parallel()

	templateDir := setupTemplates(t, map[string]string{
		"missing-include.md.j2": "{{ include_with_default(current_tag, \"nope.go\") }}",
		"syntax.md.j2":          "{% if %}",
		"command.md.j2":         "{{ run_bash(\"sh\", \"-c\", \"exit 3\") }}",
		"date.md.j2":            "{{ today(\"[unclosed\") }}",
	})

	r := newTestRenderer(t, templateDir, t.TempDir())
	data := Data{PostNumber: 1, CurrentTag: "post-1"}

	tests := []struct {
		name     string
		template string
		wantErrs []error
		unixOnly bool
	}{
		{
			name:     "fallback read failure propagates",
			template: "missing-include.md.j2",
			wantErrs: []error{ErrRender, include.ErrIncludeRead},
		},
		{
			name:     "syntax error",
			template: "syntax.md.j2",
			wantErrs: []error{ErrRender},
		},
		{
			name:     "bad date format",
			template: "date.md.j2",
			wantErrs: []error{ErrRender, dateutil.ErrInvalidDateFormat},
		},
		{
			name:     "missing template",
			template: "absent.md.j2",
			wantErrs: []error{ErrRender},
		},
		{
			name:     "command failure propagates",
			template: "command.md.j2",
			wantErrs: []error{ErrRender, ErrCommandFailed},
			unixOnly: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.unixOnly && runtime.GOOS == "windows" {
				t.Skip("uses sh")
			}

			_, err := r.Render(context.Background(), tt.template, data)
			if err == nil {
				t.Fatalf("Render(%s) expected error, got nil", tt.template)
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("Render(%s) error = %v, want %v in chain", tt.template, err, want)
				}
			}
		})
	}
}

func TestPongoRenderer_Render_CancelledContext(t *testing.T) {
	t.Parallel()

	templateDir := setupTemplates(t, map[string]string{"a.md.j2": "a"})
	r := newTestRenderer(t, templateDir, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, "a.md.j2", Data{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestNewPongoRenderer_InvalidDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := NewPongoRenderer(dir); !errors.Is(err, ErrTemplateDir) {
			t.Errorf("NewPongoRenderer(%q) error = %v, want ErrTemplateDir", dir, err)
		}
	}
}
