package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-postbuild/internal/fileutil"
	"github.com/alnah/go-postbuild/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxExtensionLength = 16  // ".j2", ".jinja"
	MaxMarkerLength    = 64  // "wotw_toc"
	MaxStyleLength     = 64  // chroma style or export theme name
	MaxBinaryLength    = 512 // git executable name or path
)

// Defaults match the layout of a posts repository:
// posts/templates/post-*.j2 compiled into posts/build/.
const (
	DefaultTemplatesDir   = "templates"
	DefaultTemplateExt    = ".j2"
	DefaultBuildDir       = "build"
	DefaultTOCMarker      = "wotw_toc"
	DefaultIncludeRoot    = "."
	DefaultGitBinary      = "git"
	DefaultHighlightStyle = "monokai"
	DefaultTheme          = "default"
)

// userConfigDirName is the directory searched under os.UserConfigDir().
const userConfigDirName = "go-postbuild"

// Config holds all configuration for a build.
type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Build     BuildConfig     `yaml:"build"`
	TOC       TOCConfig       `yaml:"toc"`
	Include   IncludeConfig   `yaml:"include"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// TemplatesConfig defines where post sources live.
type TemplatesConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"` // Template suffix stripped from output names
}

// BuildConfig defines where compiled posts go.
type BuildConfig struct {
	Dir    string `yaml:"dir"`    // Wiped and recreated on every run
	HTML   bool   `yaml:"html"`   // Also write an HTML rendering of each post
	Theme  string `yaml:"theme"`  // Page shell and stylesheet for the HTML rendering
	Assets string `yaml:"assets"` // Directory overriding built-in themes
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Marker string `yaml:"marker"` // Name inside <!-- ... -->
}

// IncludeConfig defines where embedded files are read from.
type IncludeConfig struct {
	Root string `yaml:"root"` // Repository root for git show and local fallback
	Git  string `yaml:"git"`  // git executable
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name
}

// Validate checks that every field is usable.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateRequired("templates.dir", c.Templates.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateRequired("build.dir", c.Build.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("include.root", c.Include.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("include.git", c.Include.Git, MaxBinaryLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("build.theme", c.Build.Theme, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("build.assets", c.Build.Assets, MaxPathLength); err != nil {
		return err
	}

	if err := validateRequired("templates.extension", c.Templates.Extension, MaxExtensionLength); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Templates.Extension, ".") || len(c.Templates.Extension) < 2 {
		return fmt.Errorf("%w: templates.extension %q must start with a dot", ErrInvalidField, c.Templates.Extension)
	}
	if err := fileutil.ValidateExtension(strings.TrimPrefix(c.Templates.Extension, ".")); err != nil {
		return fmt.Errorf("%w: templates.extension: %v", ErrInvalidField, err)
	}

	if err := validateRequired("toc.marker", c.TOC.Marker, MaxMarkerLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.TOC.Marker, "\r\n") || strings.Contains(c.TOC.Marker, "-->") {
		return fmt.Errorf("%w: toc.marker %q must be a single line without \"-->\"", ErrInvalidField, c.TOC.Marker)
	}

	overlaps, err := fileutil.Contains(c.Build.Dir, c.Templates.Dir)
	if err != nil {
		return fmt.Errorf("%w: build.dir: %v", ErrInvalidField, err)
	}
	if overlaps {
		return fmt.Errorf("%w: build.dir %q contains templates.dir %q (it is wiped on every run)",
			ErrInvalidField, c.Build.Dir, c.Templates.Dir)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRequired checks a field is non-empty and within its length limit.
func validateRequired(fieldName, value string, maxLength int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidField, fieldName)
	}
	return validateFieldLength(fieldName, value, maxLength)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Templates: TemplatesConfig{Dir: DefaultTemplatesDir, Extension: DefaultTemplateExt},
		Build:     BuildConfig{Dir: DefaultBuildDir, Theme: DefaultTheme},
		TOC:       TOCConfig{Marker: DefaultTOCMarker},
		Include:   IncludeConfig{Root: DefaultIncludeRoot, Git: DefaultGitBinary},
		Highlight: HighlightConfig{Style: DefaultHighlightStyle},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
// Tries the current directory, then ~/.config/go-postbuild/, each with
// .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
