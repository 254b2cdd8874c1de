package postbuild

import "errors"

// Sentinel errors for compilation.
var (
	ErrTemplateDir     = errors.New("invalid template directory")
	ErrInvalidPostName = errors.New("invalid post file name")
	ErrResetBuildDir   = errors.New("failed to reset build directory")
	ErrRender          = errors.New("post rendering failed")
	ErrWriteOutput     = errors.New("failed to write compiled post")
	ErrHTMLExport      = errors.New("HTML export failed")
)
