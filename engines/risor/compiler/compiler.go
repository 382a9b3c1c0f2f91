// Package compiler turns user function definitions and script source into
// executable Risor bytecode.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	"github.com/risor-io/risor/object"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/tplforge/tplforge/internal/helpers"
	"github.com/tplforge/tplforge/platform/script"
)

// userFnName is the wrapper identifier the compiler gives a function body.
// Leading underscores keep it out of the way of user parameter names.
const userFnName = "__user_fn"

// Compiler implements script.FunctionCompiler on the Risor engine. It is
// stateless apart from its logger; every Compile call parses and compiles
// the definition from scratch.
type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// FunctionalOption modifies a Compiler during construction.
type FunctionalOption func(*Compiler) error

// WithLogHandler sets the slog handler used by the compiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler is nil")
		}
		c.logHandler = handler
		return nil
	}
}

// New creates a new Compiler using the functional options pattern.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(c.logHandler, "risor", "Compiler")
	c.logHandler = handler
	c.logger = logger
	return c, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

// Compile turns a definition into a Callable. The body source is wrapped in
// a Risor function literal and compiled once, with the parameter names
// declared as globals; invoking the Callable binds each argument to its
// parameter global and evaluates. Compile and invocation failures propagate
// to the caller, which is responsible for containment.
func (c *Compiler) Compile(def script.Definition) (script.Callable, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}

	src := functionSource(def)
	code, err := CompileScript(src, def.Params)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", def.Name, err)
	}
	c.logger.Debug("function compiled", "name", def.Name, "params", def.Params)

	params := slices.Clone(def.Params)
	return func(ctx context.Context, args ...any) (any, error) {
		opts := make([]risorLib.Option, 0, len(params))
		for i, p := range params {
			// Missing arguments bind to nil; extras are dropped.
			var v any = object.Nil
			if i < len(args) && args[i] != nil {
				v = args[i]
			}
			opts = append(opts, risorLib.WithGlobal(p, v))
		}

		obj, err := risorLib.EvalCode(ctx, code, opts...)
		if err != nil {
			return nil, errors.New(ErrorMessage(err))
		}
		if obj == nil {
			return nil, nil
		}
		return obj.Interface(), nil
	}, nil
}

// functionSource wraps a bare function body in a declaration and a call
// site. The call arguments are the parameter names themselves, resolved as
// globals that the Callable binds per invocation; inside the function the
// parameters shadow those globals.
func functionSource(def script.Definition) string {
	params := strings.Join(def.Params, ", ")
	var b strings.Builder
	fmt.Fprintf(&b, "func %s(%s) {\n", userFnName, params)
	b.WriteString(def.Body)
	fmt.Fprintf(&b, "\n}\n%s(%s)\n", userFnName, params)
	return b.String()
}

// CompileScript parses and compiles Risor source into bytecode, declaring
// the given names as globals so the script can reference bindings that are
// only injected at eval time.
func CompileScript(source string, globals []string) (*risorCompiler.Code, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrContentEmpty
	}

	ast, err := risorParser.Parse(context.Background(), source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, ErrorMessage(err))
	}

	cfg := risorLib.NewConfig()
	globalNames := append(cfg.GlobalNames(), globals...)

	code, err := risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, err)
	}
	return code, nil
}

// ErrorMessage extracts the friendliest available message from a Risor
// parse or evaluation error.
func ErrorMessage(err error) string {
	var friendly risorErrors.FriendlyError
	if errors.As(err, &friendly) {
		return friendly.FriendlyErrorMessage()
	}
	return err.Error()
}
