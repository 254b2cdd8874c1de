package postbuild

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		ext        string
		wantNumber int
		wantTag    string
		wantOutput string
	}{
		{
			name:       "markdown template",
			path:       "templates/post-7-caching.md.j2",
			ext:        ".j2",
			wantNumber: 7,
			wantTag:    "post-7-caching",
			wantOutput: "post-7-caching.md",
		},
		{
			name:       "no md suffix",
			path:       "post-12-intro.j2",
			ext:        ".j2",
			wantNumber: 12,
			wantTag:    "post-12-intro",
			wantOutput: "post-12-intro",
		},
		{
			name:       "custom extension",
			path:       "/src/post-3.md.jinja",
			ext:        ".jinja",
			wantNumber: 3,
			wantTag:    "post-3",
			wantOutput: "post-3.md",
		},
		{
			name:       "every md occurrence removed from tag",
			path:       "post-4-why.md-files.md.j2",
			ext:        ".j2",
			wantNumber: 4,
			wantTag:    "post-4-why-files",
			wantOutput: "post-4-why.md-files.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePost(tt.path, tt.ext)
			if err != nil {
				t.Fatalf("ParsePost(%q) unexpected error: %v", tt.path, err)
			}
			if got.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", got.Number, tt.wantNumber)
			}
			if got.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", got.Tag, tt.wantTag)
			}
			if got.OutputName != tt.wantOutput {
				t.Errorf("OutputName = %q, want %q", got.OutputName, tt.wantOutput)
			}
			if got.Path != tt.path {
				t.Errorf("Path = %q, want %q", got.Path, tt.path)
			}
		})
	}
}

func TestParsePost_InvalidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{"no dash", "post.md.j2"},
		{"non numeric", "post-intro.md.j2"},
		{"empty number", "post--x.md.j2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParsePost(tt.path, ".j2")
			if !errors.Is(err, ErrInvalidPostName) {
				t.Errorf("ParsePost(%q) error = %v, want ErrInvalidPostName", tt.path, err)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"post-2-b.md.j2",
		"post-10-c.md.j2",
		"post-1-a.md.j2",
		"draft-3-x.md.j2",
		"post-4-notes.txt",
		"base.html.j2",
	} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	if err := os.Mkdir(filepath.Join(dir, "post-5-dir.j2"), 0o750); err != nil {
		t.Fatal(err)
	}

	posts, err := Discover(dir, ".j2")
	if err != nil {
		t.Fatalf("Discover() unexpected error: %v", err)
	}

	want := []string{"post-1-a.md.j2", "post-10-c.md.j2", "post-2-b.md.j2"}
	if len(posts) != len(want) {
		t.Fatalf("Discover() returned %d posts, want %d: %+v", len(posts), len(want), posts)
	}
	for i, p := range posts {
		if p.Name != want[i] {
			t.Errorf("posts[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestDiscover_DefaultExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "post-1-a.md.j2"), "x")

	posts, err := Discover(dir, "")
	if err != nil {
		t.Fatalf("Discover() unexpected error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Discover() returned %d posts, want 1", len(posts))
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".j2")
		if !errors.Is(err, ErrTemplateDir) {
			t.Errorf("Discover() error = %v, want ErrTemplateDir", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		writeFile(t, path, "x")
		_, err := Discover(path, ".j2")
		if !errors.Is(err, ErrTemplateDir) {
			t.Errorf("Discover() error = %v, want ErrTemplateDir", err)
		}
	})

	t.Run("invalid post name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "post-x.md.j2"), "x")
		_, err := Discover(dir, ".j2")
		if !errors.Is(err, ErrInvalidPostName) {
			t.Errorf("Discover() error = %v, want ErrInvalidPostName", err)
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
