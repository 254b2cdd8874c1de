package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed styles/*.css pages/*.html
var builtin embed.FS

// EmbeddedLoader loads the built-in themes.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in stylesheet by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load("styles", name, ".css", ErrStyleNotFound)
}

// LoadPage loads a built-in page shell by name.
func (e *EmbeddedLoader) LoadPage(name string) (string, error) {
	return e.load("pages", name, ".html", ErrPageNotFound)
}

// Themes returns the names of the built-in themes, sorted.
func (e *EmbeddedLoader) Themes() []string {
	entries, err := builtin.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	return names
}

func (e *EmbeddedLoader) load(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	// embed.FS paths always use forward slashes.
	content, err := builtin.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
