package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailgun/raymond/v2"

	"github.com/tplforge/tplforge/platform/script"
)

// DispatcherName is the generic dispatcher helper: its first parameter is a
// function name, resolved against the active definition set at render time.
const DispatcherName = "func"

// builtinHelpers is the fixed helper set available regardless of user
// functions.
func builtinHelpers() map[string]any {
	return map[string]any{
		"uppercase": func(args ...any) string {
			return strings.ToUpper(firstArg(args))
		},
		"lowercase": func(args ...any) string {
			return strings.ToLower(firstArg(args))
		},
	}
}

func firstArg(args []any) string {
	if len(args) == 0 {
		return ""
	}
	return raymond.Str(args[0])
}

// buildHelpers assembles the per-render helper map: the fixed built-ins, one
// direct helper per definition, and the dispatcher. The map is constructed
// fresh for every render, so nothing leaks between calls and concurrent
// renders never share helper state.
func buildHelpers(ctx context.Context, comp script.FunctionCompiler, defs []script.Definition) map[string]any {
	helperMap := builtinHelpers()

	active := script.ActiveSet(defs)
	byName := make(map[string]script.Definition, len(active))

	// Helpers are declared variadic: the engine maps template call
	// arguments positionally onto the Go signature, so a fixed arity would
	// reject any call that passes arguments.
	for _, d := range active {
		def := d
		byName[def.Name] = def
		helperMap[def.Name] = func(args ...any) raymond.SafeString {
			return invoke(ctx, comp, def, args)
		}
	}

	// Registered last so a user function named "func" cannot displace it.
	helperMap[DispatcherName] = func(args ...any) raymond.SafeString {
		if len(args) == 0 {
			return notFound("")
		}
		name := raymond.Str(args[0])
		def, ok := byName[name]
		if !ok {
			return notFound(name)
		}
		return invoke(ctx, comp, def, args[1:])
	}

	return helperMap
}

// invoke compiles and calls a definition with the given arguments. Faults
// degrade to an inline placeholder at the call site; they are never fatal to
// the surrounding render.
func invoke(ctx context.Context, comp script.FunctionCompiler, def script.Definition, args []any) raymond.SafeString {
	fn, err := comp.Compile(def)
	if err != nil {
		return callError(def.Name, err)
	}

	out, err := fn(ctx, args...)
	if err != nil {
		return callError(def.Name, err)
	}
	return raymond.SafeString(raymond.Str(out))
}

func notFound(name string) raymond.SafeString {
	return raymond.SafeString(fmt.Sprintf("[Function '%s' not found]", name))
}

func callError(name string, err error) raymond.SafeString {
	return raymond.SafeString(fmt.Sprintf("[Error in '%s': %s]", name, err))
}
