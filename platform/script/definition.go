package script

import (
	"fmt"
	"regexp"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Definition is a user-authored function: a name, an ordered parameter list,
// and the source text of a function body (not a full declaration). The
// surrounding application owns and mutates definitions; the engine treats
// each render or execution as receiving an immutable snapshot.
type Definition struct {
	Name   string   `json:"name"   yaml:"name"`
	Params []string `json:"params" yaml:"params"`
	Body   string   `json:"body"   yaml:"body"`
}

// Validate checks that the name and all parameter names are identifiers.
// The body is not validated here; compilation happens on demand and compile
// failures surface at the call site.
func (d Definition) Validate() error {
	if !identRe.MatchString(d.Name) {
		return fmt.Errorf("invalid function name %q", d.Name)
	}
	for _, p := range d.Params {
		if !identRe.MatchString(p) {
			return fmt.Errorf("function %q: invalid parameter name %q", d.Name, p)
		}
	}
	return nil
}

func (d Definition) String() string {
	return fmt.Sprintf("Definition{Name: %s, Params: %v}", d.Name, d.Params)
}

// ActiveSet collapses a definition list into the set that is active for a
// single render or execution. Duplicate names are allowed in the input; the
// last-registered definition wins. Order follows first appearance of each
// name, so results are deterministic.
func ActiveSet(defs []Definition) []Definition {
	out := make([]Definition, 0, len(defs))
	index := make(map[string]int, len(defs))

	for _, d := range defs {
		if i, ok := index[d.Name]; ok {
			out[i] = d
			continue
		}
		index[d.Name] = len(out)
		out = append(out, d)
	}
	return out
}
