package postbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultTemplateExt is the suffix of post sources.
const DefaultTemplateExt = ".j2"

// postPrefix starts every post source name.
const postPrefix = "post-"

// Post is one discovered template file.
type Post struct {
	Path       string // Full path to the source
	Name       string // Basename, e.g. post-7-caching.md.j2
	Number     int    // Second dash-separated field of Name
	Tag        string // Name without the template extension and without ".md"
	OutputName string // Name without the template extension
}

// ParsePost derives a Post from a source path and its template extension.
func ParsePost(path, ext string) (Post, error) {
	name := filepath.Base(path)

	fields := strings.Split(name, "-")
	if len(fields) < 2 {
		return Post{}, fmt.Errorf("%w: %s: no number field", ErrInvalidPostName, name)
	}
	number, err := strconv.Atoi(fields[1])
	if err != nil {
		return Post{}, fmt.Errorf("%w: %s: number field %q", ErrInvalidPostName, name, fields[1])
	}

	output := strings.TrimSuffix(name, ext)
	return Post{
		Path:       path,
		Name:       name,
		Number:     number,
		Tag:        strings.ReplaceAll(output, ".md", ""),
		OutputName: output,
	}, nil
}

// Discover returns the posts in templateDir sorted by name.
// A directory without posts yields nil.
func Discover(templateDir, ext string) ([]Post, error) {
	if ext == "" {
		ext = DefaultTemplateExt
	}

	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateDir, templateDir)
	}

	entries, err := os.ReadDir(templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateDir, err)
	}

	// ReadDir returns entries sorted by filename.
	var posts []Post
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, postPrefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		p, err := ParsePost(filepath.Join(templateDir, name), ext)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
