package platform

import "fmt"

// ErrorKind classifies the fault captured in an ExecutionResult.
type ErrorKind string

const (
	// ErrorKindNone means the script ran to completion.
	ErrorKindNone ErrorKind = ""

	// ErrorKindCompile means the script source failed to parse or compile.
	ErrorKindCompile ErrorKind = "compile"

	// ErrorKindRuntime means the script raised during execution.
	ErrorKindRuntime ErrorKind = "runtime"

	// ErrorKindBudget means the script exceeded its execution budget.
	ErrorKindBudget ErrorKind = "budget"
)

// ExecutionResult is the outcome of one sandbox run. It is always returned,
// never replaced by an error: faults are captured in the Error field and the
// logs and context mutations accumulated up to the fault are preserved.
type ExecutionResult struct {
	// Logs holds the output of the script's logging intrinsic, in call order.
	Logs []string

	// FinalContext is the working copy of the caller's context after the run,
	// reflecting whatever mutation occurred before any fault. Always non-nil
	// and independently mutable from the input.
	FinalContext map[string]any

	// Error is the fault message. Empty if and only if the run succeeded.
	Error string

	// Kind classifies the fault. ErrorKindNone on success.
	Kind ErrorKind
}

// Failed reports whether the run captured a fault.
func (r *ExecutionResult) Failed() bool {
	return r.Error != ""
}

func (r *ExecutionResult) String() string {
	return fmt.Sprintf(
		"ExecutionResult{Logs: %d, ContextKeys: %d, Kind: %q, Error: %q}",
		len(r.Logs), len(r.FinalContext), r.Kind, r.Error)
}
