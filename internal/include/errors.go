package include

import "errors"

// Sentinel errors for content inclusion.
var (
	// ErrRevisionNotFound means the revision lookup could not produce the
	// file. It is recovered by falling back to the local copy.
	ErrRevisionNotFound = errors.New("file not found at revision")

	// ErrIncludeRead means the local copy could not be read. It is fatal.
	ErrIncludeRead = errors.New("failed to read included file")

	ErrEmptyIncludePath = errors.New("include path cannot be empty")
)
