// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os/exec"
	"strings"
)

// GitAvailable reports whether a git executable can be found.
// Replaced in tests.
var GitAvailable = func(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-postbuild/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-postbuild") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTemplateDir returns a hint for a missing templates directory.
func ForTemplateDir() string {
	return format("use --templates <dir> or set templates.dir in the config file")
}

// ForIncludeRead returns hints for an embed that failed both lookups.
// Without git every include is read from the working tree.
func ForIncludeRead(gitBinary string) string {
	if gitBinary == "" {
		gitBinary = "git"
	}

	var hints []string
	if !GitAvailable(gitBinary) {
		hints = append(hints, gitBinary+" not found in PATH, so revision lookups always fall back to local files")
	}
	hints = append(hints, "paths are relative to include.root (--root)")
	return formatHints(hints)
}

// ForBuildDir returns hints for build directory errors.
func ForBuildDir() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
