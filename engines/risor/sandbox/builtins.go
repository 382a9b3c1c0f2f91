package sandbox

import (
	"context"
	"strings"

	"github.com/risor-io/risor/object"

	"github.com/tplforge/tplforge/internal/helpers"
	"github.com/tplforge/tplforge/platform/constants"
	"github.com/tplforge/tplforge/platform/script"
)

// logBuffer accumulates log lines emitted by the logging intrinsic, in call
// order. Execution is single-goroutine, so no locking is needed.
type logBuffer struct {
	lines []string
}

func (b *logBuffer) append(line string) {
	b.lines = append(b.lines, line)
}

func (b *logBuffer) entries() []string {
	if b.lines == nil {
		return []string{}
	}
	return b.lines
}

// logBuiltin returns the `log` intrinsic. Each call appends one line: maps
// and lists pretty-printed as JSON, primitives in their string form, multiple
// arguments joined by a space.
func logBuiltin(buf *logBuffer) *object.Builtin {
	return object.NewBuiltin(constants.Log, func(ctx context.Context, args ...object.Object) object.Object {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, helpers.FormatLogValue(a.Interface()))
		}
		buf.append(strings.Join(parts, " "))
		return object.Nil
	})
}

// functionBuiltin exposes a user function definition as a free identifier
// inside a script. The definition is compiled on each call; compile and
// invocation faults surface as script errors, which the sandbox captures.
func functionBuiltin(comp script.FunctionCompiler, def script.Definition) *object.Builtin {
	return object.NewBuiltin(def.Name, func(ctx context.Context, args ...object.Object) object.Object {
		fn, err := comp.Compile(def)
		if err != nil {
			return object.NewError(err)
		}

		goArgs := make([]any, len(args))
		for i, a := range args {
			goArgs[i] = a.Interface()
		}

		out, err := fn(ctx, goArgs...)
		if err != nil {
			return object.NewError(err)
		}
		if out == nil {
			return object.Nil
		}
		return object.FromGoType(out)
	})
}
