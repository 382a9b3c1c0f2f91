// Package sandbox executes user scripts on the Starlark engine. It honors
// the same result contract as the Risor sandbox: logs and context mutations
// are preserved up to any fault, and faults never propagate to the caller.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	risorCompiler "github.com/tplforge/tplforge/engines/risor/compiler"
	"github.com/tplforge/tplforge/engines/types"
	"github.com/tplforge/tplforge/internal/helpers"
	"github.com/tplforge/tplforge/platform"
	"github.com/tplforge/tplforge/platform/constants"
	"github.com/tplforge/tplforge/platform/data"
	"github.com/tplforge/tplforge/platform/script"
)

const sandboxFilename = "sandbox.star"

// Sandbox runs Starlark scripts. User function definitions remain Risor
// source; they are compiled through the shared function compiler and exposed
// to Starlark as builtins, so both dialects call the same function set.
type Sandbox struct {
	timeout    time.Duration
	compiler   script.FunctionCompiler
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

// New creates a Starlark sandbox.
func New(opts ...Option) (*Sandbox, error) {
	s := &Sandbox{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("error applying sandbox option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(s.logHandler, types.Starlark.String(), "Sandbox")
	s.logHandler = handler
	s.logger = logger

	comp, err := risorCompiler.New(risorCompiler.WithLogHandler(handler))
	if err != nil {
		return nil, fmt.Errorf("failed to create function compiler: %w", err)
	}
	s.compiler = comp
	return s, nil
}

func (s *Sandbox) String() string {
	return "starlark.Sandbox"
}

// fileOptions enables the imperative conveniences scripts expect: while
// loops, top-level control flow, recursion, and reassignment of globals.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		Recursion:       true,
		GlobalReassign:  true,
		Set:             true,
	}
}

// standardModules returns a copy of the Starlark universe with the json,
// math and time modules added, used consistently for both compilation-time
// name resolution and runtime execution.
func standardModules() starlarkLib.StringDict {
	universe := maps.Clone(starlarkLib.Universe)
	universe["json"] = starlarkJSON.Module
	universe["math"] = starlarkMath.Module
	universe["time"] = starlarkTime.Module
	return universe
}

// Execute implements platform.Sandbox.
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

	ctxDict, err := toStarlarkDict(working)
	if err != nil {
		result.Error = err.Error()
		result.Kind = platform.ErrorKindRuntime
		return result
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logs := &logBuffer{}
	predeclared := standardModules()
	predeclared[constants.Ctx] = ctxDict
	predeclared[constants.Log] = logBuiltin(logs)
	for _, d := range script.ActiveSet(funcs) {
		predeclared[d.Name] = functionBuiltin(ctx, s.compiler, d)
	}

	f, err := fileOptions().Parse(sandboxFilename, []byte(code), 0)
	if err != nil {
		result.Error = err.Error()
		result.Kind = platform.ErrorKindCompile
		logger.DebugContext(ctx, "script parse failed", "error", err)
		return result
	}

	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		result.Error = err.Error()
		result.Kind = platform.ErrorKindCompile
		logger.DebugContext(ctx, "script compilation failed", "error", err)
		return result
	}

	thread := &starlarkLib.Thread{
		Name: "sandbox",
		Print: func(thread *starlarkLib.Thread, msg string) {
			logs.append(msg)
		},
	}

	// Propagate context cancellation into the running thread. The watcher
	// always exits because the context is cancelled on return.
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		<-watchCtx.Done()
		if err := ctx.Err(); err != nil {
			thread.Cancel(err.Error())
		}
	}()

	start := time.Now()
	_, evalErr := prog.Init(thread, predeclared)
	logger.DebugContext(ctx, "script execution finished",
		"execTime", time.Since(start), "error", evalErr)

	result.Logs = logs.entries()
	if final, convErr := fromStarlarkDict(ctxDict); convErr == nil {
		result.FinalContext = final
	}

	if evalErr != nil {
		if s.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Sprintf("execution budget exceeded after %s", s.timeout)
			result.Kind = platform.ErrorKindBudget
		} else {
			result.Error = errorMessage(evalErr)
			result.Kind = platform.ErrorKindRuntime
		}
	}
	return result
}

// errorMessage extracts the script-level message from a Starlark fault,
// dropping the backtrace that EvalError.Error() includes.
func errorMessage(err error) string {
	var evalErr *starlarkLib.EvalError
	if errors.As(err, &evalErr) {
		return strings.TrimPrefix(evalErr.Msg, "fail: ")
	}
	return err.Error()
}
