package template

import (
	"fmt"
	"regexp"
	"strings"
)

// shorthandRe matches the function-call shorthand {{#func:name(args)}}.
// The argument list is matched lazily up to the first `)}}`; nested
// parentheses inside arguments survive as long as that closing sequence does
// not occur inside them.
var shorthandRe = regexp.MustCompile(`\{\{#func:([A-Za-z_][A-Za-z0-9_]*)\((.*?)\)\}\}`)

// Preprocess rewrites every occurrence of the call shorthand into the
// dispatcher helper form `{{func "name" arg1 arg2}}`. Arguments are split
// per SplitArgs; any commas remaining inside an argument are replaced by
// spaces, since helper parameters are whitespace-separated. All other
// template content passes through unmodified.
//
// This is a pure, stateless, single-pass rewrite over the whole string. It
// does not parse template blocks, so a call marker appearing inside a quoted
// string literal elsewhere in the template is rewritten as well; such input
// is unsupported.
func Preprocess(source string) string {
	return shorthandRe.ReplaceAllStringFunc(source, func(match string) string {
		m := shorthandRe.FindStringSubmatch(match)
		name, rawArgs := m[1], m[2]

		parts := []string{DispatcherName, fmt.Sprintf("%q", name)}
		for _, arg := range SplitArgs(rawArgs) {
			if arg == "" {
				continue
			}
			parts = append(parts, strings.ReplaceAll(arg, ",", " "))
		}
		return "{{" + strings.Join(parts, " ") + "}}"
	})
}
