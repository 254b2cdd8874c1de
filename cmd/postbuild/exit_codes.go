package main

import (
	"errors"
	"os"

	postbuild "github.com/alnah/go-postbuild"
	"github.com/alnah/go-postbuild/internal/assets"
	"github.com/alnah/go-postbuild/internal/config"
	"github.com/alnah/go-postbuild/internal/fileutil"
	"github.com/alnah/go-postbuild/internal/include"
	"github.com/alnah/go-postbuild/internal/pipeline"
	"github.com/alnah/go-postbuild/internal/render"
)

// Exit codes for postbuild CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All posts compiled
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or post names
	ExitIO      = 3 // Missing files, unwritable build directory
	ExitRender  = 4 // Template or command failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Checks run from most to least specific: a failed include is wrapped in a
// render error but reported as I/O.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, postbuild.ErrTemplateDir) ||
		errors.Is(err, postbuild.ErrInvalidPostName) ||
		errors.Is(err, fileutil.ErrUnsafeDir) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrPageNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, pipeline.ErrInvalidPage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, include.ErrIncludeRead) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, postbuild.ErrWriteOutput) ||
		errors.Is(err, postbuild.ErrResetBuildDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Render/command errors (exit 4)
	if errors.Is(err, postbuild.ErrRender) ||
		errors.Is(err, postbuild.ErrHTMLExport) ||
		errors.Is(err, render.ErrRender) ||
		errors.Is(err, render.ErrCommandFailed) ||
		errors.Is(err, render.ErrEmptyCommand) {
		return ExitRender
	}

	return ExitGeneral
}
