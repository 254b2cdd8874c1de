package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a theme name is safe to use as a filename.
// Names must be non-empty and free of path separators and dots, so neither
// the directory nor the extension can be changed through the name.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
