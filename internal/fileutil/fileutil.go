// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrUnsafeDir              = errors.New("refusing to remove directory")
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ValidateExtension checks that the extension (without dot) is a plain suffix.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "postbuild" -> false (name)
//   - "./postbuild.yaml" -> true (relative path)
//   - "/etc/postbuild.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Contains reports whether path is dir itself or lies somewhere below it.
// Both are made absolute first, so "." contains "templates".
func Contains(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		// Different volumes.
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// ResetDir removes dir with everything in it, then recreates it empty.
// The filesystem root, the current directory and its parent are refused.
func ResetDir(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == ".." || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrUnsafeDir, dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// WriteFile writes content to path with FilePermissions.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
