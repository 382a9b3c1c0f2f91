package sandbox

import (
	"context"
	"fmt"
	"strings"

	starlarkLib "go.starlark.net/starlark"

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

// logBuiltin returns the `log` intrinsic: maps and lists pretty-printed as
// JSON, primitives in their string form, multiple arguments joined by a space.
func logBuiltin(buf *logBuffer) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin(constants.Log,
		func(thread *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
			parts := make([]string, 0, args.Len())
			for i := 0; i < args.Len(); i++ {
				v, err := fromStarlarkValue(args.Index(i))
				if err != nil {
					return nil, err
				}
				parts = append(parts, helpers.FormatLogValue(v))
			}
			buf.append(strings.Join(parts, " "))
			return starlarkLib.None, nil
		})
}

// functionBuiltin exposes a user function definition as a free identifier
// inside a script. Arguments cross the Starlark/Go boundary positionally;
// keyword arguments are rejected because definitions declare only an ordered
// parameter list.
func functionBuiltin(ctx context.Context, comp script.FunctionCompiler, def script.Definition) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin(def.Name,
		func(thread *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
			}

			fn, err := comp.Compile(def)
			if err != nil {
				return nil, err
			}

			goArgs := make([]any, 0, args.Len())
			for i := 0; i < args.Len(); i++ {
				v, err := fromStarlarkValue(args.Index(i))
				if err != nil {
					return nil, err
				}
				goArgs = append(goArgs, v)
			}

			out, err := fn(ctx, goArgs...)
			if err != nil {
				return nil, err
			}
			return toStarlarkValue(out)
		})
}
