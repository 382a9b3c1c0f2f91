package template

import "errors"

var (
	// ErrRender wraps any template parse or evaluation failure. Rendering is
	// atomic: when this error is returned, no partial output exists.
	ErrRender = errors.New("template render failed")

	// ErrNoCompiler is returned when a Renderer is constructed without a
	// function compiler.
	ErrNoCompiler = errors.New("function compiler is nil")
)
