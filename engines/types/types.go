// Package types defines the set of script dialects available to the sandbox.
package types

import "fmt"

// Type identifies a script engine dialect.
type Type string

const (
	Risor    Type = "risor"
	Starlark Type = "starlark"
)

// Parse converts a string (e.g. a CLI flag value) into a Type.
func Parse(s string) (Type, error) {
	switch Type(s) {
	case Risor:
		return Risor, nil
	case Starlark:
		return Starlark, nil
	default:
		return "", fmt.Errorf("unsupported engine type %q", s)
	}
}

func (t Type) String() string {
	return string(t)
}
