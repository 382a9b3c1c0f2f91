// Package sandbox executes user scripts on the Risor engine, capturing logs
// and context mutations while isolating failures from the host.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	risorLib "github.com/risor-io/risor"
	"github.com/risor-io/risor/object"

	"github.com/tplforge/tplforge/engines/risor/compiler"
	"github.com/tplforge/tplforge/engines/types"
	"github.com/tplforge/tplforge/internal/helpers"
	"github.com/tplforge/tplforge/platform"
	"github.com/tplforge/tplforge/platform/constants"
	"github.com/tplforge/tplforge/platform/data"
	"github.com/tplforge/tplforge/platform/script"
)

// Sandbox runs Risor scripts. Zero value is not usable; construct with New.
type Sandbox struct {
	timeout    time.Duration
	compiler   *compiler.Compiler
	logHandler slog.Handler
	logger     *slog.Logger
}

// Option modifies a Sandbox during construction.
type Option func(*Sandbox) error

// WithLogHandler sets the slog handler used by the sandbox.
func WithLogHandler(handler slog.Handler) Option {
	return func(s *Sandbox) error {
		if handler == nil {
			return fmt.Errorf("log handler is nil")
		}
		s.logHandler = handler
		return nil
	}
}

// WithTimeout sets a wall-clock execution budget for each Execute call.
// Exceeding it yields an ErrorKindBudget result. Zero means no budget.
func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) error {
		if d < 0 {
			return fmt.Errorf("timeout must not be negative")
		}
		s.timeout = d
		return nil
	}
}

// New creates a Risor sandbox.
func New(opts ...Option) (*Sandbox, error) {
	s := &Sandbox{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("error applying sandbox option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(s.logHandler, types.Risor.String(), "Sandbox")
	s.logHandler = handler
	s.logger = logger

	comp, err := compiler.New(compiler.WithLogHandler(handler))
	if err != nil {
		return nil, fmt.Errorf("failed to create risor compiler: %w", err)
	}
	s.compiler = comp
	return s, nil
}

func (s *Sandbox) String() string {
	return "risor.Sandbox"
}

// Execute implements platform.Sandbox. The script sees the deep-cloned
// context as `ctx`, the logging intrinsic as `log`, and every definition in
// funcs as a free callable identifier. Faults never propagate: compile,
// runtime, and budget failures are all captured in the result alongside the
// logs and mutations accumulated up to the fault.
func (s *Sandbox) Execute(
	ctx context.Context,
	code string,
	input map[string]any,
	funcs []script.Definition,
) *platform.ExecutionResult {
	logger := s.logger.WithGroup("Execute")

	working := data.Clone(input)
	result := &platform.ExecutionResult{
		Logs:         []string{},
		FinalContext: working,
	}

	defs := script.ActiveSet(funcs)
	globals := make([]string, 0, len(defs)+2)
	globals = append(globals, constants.Ctx, constants.Log)
	for _, d := range defs {
		globals = append(globals, d.Name)
	}

	bytecode, err := compiler.CompileScript(code, globals)
	if err != nil {
		result.Error = err.Error()
		result.Kind = platform.ErrorKindCompile
		logger.DebugContext(ctx, "script compilation failed", "error", err)
		return result
	}

	ctxObj, ok := object.FromGoType(working).(*object.Map)
	if !ok {
		result.Error = fmt.Sprintf("context not representable in risor: %T", working)
		result.Kind = platform.ErrorKindRuntime
		return result
	}

	logs := &logBuffer{}
	opts := []risorLib.Option{
		risorLib.WithGlobal(constants.Ctx, ctxObj),
		risorLib.WithGlobal(constants.Log, logBuiltin(logs)),
	}
	for _, d := range defs {
		opts = append(opts, risorLib.WithGlobal(d.Name, functionBuiltin(s.compiler, d)))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	_, evalErr := risorLib.EvalCode(ctx, bytecode, opts...)
	logger.DebugContext(ctx, "script execution finished",
		"execTime", time.Since(start), "error", evalErr)

	result.Logs = logs.entries()
	if final, ok := ctxObj.Interface().(map[string]any); ok {
		result.FinalContext = final
	}

	if evalErr != nil {
		if s.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Sprintf("execution budget exceeded after %s", s.timeout)
			result.Kind = platform.ErrorKindBudget
		} else {
			result.Error = compiler.ErrorMessage(evalErr)
			result.Kind = platform.ErrorKindRuntime
		}
	}
	return result
}
