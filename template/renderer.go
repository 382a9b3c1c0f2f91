// Package template renders multi-format templates (JSON, HTML, SQL) with
// Handlebars semantics, a custom function-call shorthand, and user-defined
// helpers backed by a script engine.
package template

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mailgun/raymond/v2"

	"github.com/tplforge/tplforge/internal/helpers"
	"github.com/tplforge/tplforge/platform/script"
)

// Renderer orchestrates preprocessing, per-render helper registration, and
// template compilation and evaluation. A Renderer is safe for concurrent use;
// all mutable render state is per-call.
type Renderer struct {
	compiler   script.FunctionCompiler
	logHandler slog.Handler
	logger     *slog.Logger
}

// Option modifies a Renderer during construction.
type Option func(*Renderer) error

// WithLogHandler sets the slog handler used by the renderer.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Renderer) error {
		if handler == nil {
			return fmt.Errorf("log handler is nil")
		}
		r.logHandler = handler
		return nil
	}
}

// New creates a Renderer whose user functions are compiled with comp.
func New(comp script.FunctionCompiler, opts ...Option) (*Renderer, error) {
	if comp == nil {
		return nil, ErrNoCompiler
	}

	r := &Renderer{compiler: comp}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("error applying renderer option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(r.logHandler, "template", "Renderer")
	r.logHandler = handler
	r.logger = logger
	return r, nil
}

func (r *Renderer) String() string {
	return "template.Renderer"
}

// Render evaluates a template against a context object with the given
// function definitions available as helpers. The operation is atomic: any
// parse or evaluation failure yields an error wrapping ErrRender and no
// partial output. Failures attributable to a single function call do not
// fail the render; they degrade to inline placeholders (see buildHelpers).
func (r *Renderer) Render(
	ctx context.Context,
	source string,
	data map[string]any,
	funcs []script.Definition,
) (out string, err error) {
	logger := r.logger.WithGroup("Render")

	if data == nil {
		data = map[string]any{}
	}

	// The template engine reports malformed helpers and some structural
	// faults by panicking; those are render errors here, not crashes.
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = fmt.Errorf("%w: %v", ErrRender, rec)
		}
	}()

	helperMap := buildHelpers(ctx, r.compiler, funcs)
	pre := Preprocess(source)

	tpl, err := raymond.Parse(pre)
	if err != nil {
		logger.DebugContext(ctx, "template parse failed", "error", err)
		return "", fmt.Errorf("%w: %s", ErrRender, err)
	}
	tpl.RegisterHelpers(helperMap)

	out, err = tpl.Exec(data)
	if err != nil {
		logger.DebugContext(ctx, "template evaluation failed", "error", err)
		return "", fmt.Errorf("%w: %s", ErrRender, err)
	}

	logger.DebugContext(ctx, "render complete", "bytes", len(out))
	return out, nil
}
