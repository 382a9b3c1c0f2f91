package template

import (
	"regexp"
	"sort"

	"github.com/tplforge/tplforge/platform/script"
)

// The scanner recognizes both call forms independently: the shorthand the
// preprocessor rewrites, and the dispatcher form with a quoted name that
// older templates carry directly.
var (
	shorthandRefRe  = regexp.MustCompile(`\{\{#func:([A-Za-z_][A-Za-z0-9_]*)\(`)
	dispatcherRefRe = regexp.MustCompile(`\{\{\s*` + DispatcherName + `\s+"([A-Za-z_][A-Za-z0-9_]*)"`)
)

// MissingFunctions statically scans template source for function-call
// references and returns the names absent from the supplied definitions,
// deduplicated and sorted. The scan is advisory and read-only: it does not
// validate template structure, and a name it finds may still fail to render
// for structural reasons.
func MissingFunctions(source string, funcs []script.Definition) []string {
	defined := make(map[string]bool, len(funcs))
	for _, d := range funcs {
		defined[d.Name] = true
	}

	seen := map[string]bool{}
	missing := []string{}
	for _, re := range []*regexp.Regexp{shorthandRefRe, dispatcherRefRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			name := m[1]
			if defined[name] || seen[name] {
				continue
			}
			seen[name] = true
			missing = append(missing, name)
		}
	}

	sort.Strings(missing)
	return missing
}
