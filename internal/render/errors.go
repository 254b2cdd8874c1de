package render

import "errors"

// Sentinel errors for template rendering.
var (
	ErrTemplateDir   = errors.New("invalid template directory")
	ErrRender        = errors.New("template rendering failed")
	ErrCommandFailed = errors.New("command failed")
	ErrEmptyCommand  = errors.New("command cannot be empty")
)
