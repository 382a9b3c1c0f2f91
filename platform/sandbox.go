// Package platform defines the engine-facing contracts shared by all script
// dialects: the sandbox interface and its result type.
package platform

import (
	"context"
	"fmt"

	"github.com/tplforge/tplforge/platform/script"
)

// Sandbox executes free-form user scripts against a live data context,
// capturing logs and mutations while isolating failures.
type Sandbox interface {
	// Execute runs code against a deep-cloned copy of data, with every
	// function in funcs available as a free identifier and a logging
	// intrinsic bound alongside the working context. It never returns an
	// error and never panics outward; all faults are captured in the result.
	Execute(ctx context.Context, code string, data map[string]any, funcs []script.Definition) *ExecutionResult

	fmt.Stringer
}
