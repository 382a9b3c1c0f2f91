package script

import "context"

// Callable is a compiled user function. Invoking it executes the function
// body with each parameter bound, in order, to the corresponding argument.
// Missing arguments bind to nil and extra arguments are dropped, matching
// the loose call semantics templates and scripts expect.
//
// Invocation faults are returned, never swallowed; containment is the
// caller's job (the helper registry renders a placeholder, the sandbox
// captures the fault into its result).
type Callable func(ctx context.Context, args ...any) (any, error)

// FunctionCompiler turns a Definition into a Callable. Implementations are
// stateless and perform no caching; recompilation per call is acceptable for
// a bounded set of short user functions.
type FunctionCompiler interface {
	Compile(def Definition) (Callable, error)
}
