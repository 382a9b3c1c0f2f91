// Package tplforge is a template interpolation and embedded function
// execution engine. It renders Handlebars-style templates (JSON, HTML, SQL
// flavored) with user-defined functions available as helpers, and executes
// free-form user scripts against a deep-cloned data context, capturing logs
// and mutations while isolating failures from the host.
package tplforge

import (
	"context"
	"fmt"
	"log/slog"

	risorCompiler "github.com/tplforge/tplforge/engines/risor/compiler"
	risorSandbox "github.com/tplforge/tplforge/engines/risor/sandbox"
	starlarkSandbox "github.com/tplforge/tplforge/engines/starlark/sandbox"
	"github.com/tplforge/tplforge/engines/types"
	"github.com/tplforge/tplforge/platform"
	"github.com/tplforge/tplforge/platform/script"
	"github.com/tplforge/tplforge/template"
)

// NewRenderer creates a template renderer with user functions compiled on
// the Risor engine.
func NewRenderer(handler slog.Handler, opts ...template.Option) (*template.Renderer, error) {
	compilerOpts := []risorCompiler.FunctionalOption{}
	if handler != nil {
		compilerOpts = append(compilerOpts, risorCompiler.WithLogHandler(handler))
		opts = append([]template.Option{template.WithLogHandler(handler)}, opts...)
	}

	comp, err := risorCompiler.New(compilerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create function compiler: %w", err)
	}
	return template.New(comp, opts...)
}

// NewRisorSandbox creates a script sandbox for the Risor dialect.
func NewRisorSandbox(opts ...risorSandbox.Option) (platform.Sandbox, error) {
	return risorSandbox.New(opts...)
}

// NewStarlarkSandbox creates a script sandbox for the Starlark dialect.
func NewStarlarkSandbox(opts ...starlarkSandbox.Option) (platform.Sandbox, error) {
	return starlarkSandbox.New(opts...)
}

// NewSandbox creates a script sandbox for the given dialect with an optional
// log handler. For per-engine options, use the engine constructors directly.
func NewSandbox(engine types.Type, handler slog.Handler) (platform.Sandbox, error) {
	switch engine {
	case types.Risor:
		if handler != nil {
			return NewRisorSandbox(risorSandbox.WithLogHandler(handler))
		}
		return NewRisorSandbox()
	case types.Starlark:
		if handler != nil {
			return NewStarlarkSandbox(starlarkSandbox.WithLogHandler(handler))
		}
		return NewStarlarkSandbox()
	default:
		return nil, fmt.Errorf("unsupported engine type %q", engine)
	}
}

// Render is a one-shot convenience: it builds a Risor-backed renderer and
// evaluates the template against the context with the given functions.
func Render(
	ctx context.Context,
	source string,
	data map[string]any,
	funcs []script.Definition,
) (string, error) {
	r, err := NewRenderer(nil)
	if err != nil {
		return "", err
	}
	return r.Render(ctx, source, data, funcs)
}

// ScanTemplate reports function names referenced in the template source but
// absent from the supplied definitions.
func ScanTemplate(source string, funcs []script.Definition) []string {
	return template.MissingFunctions(source, funcs)
}
