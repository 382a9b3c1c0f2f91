package template

import "strings"

// SplitArgs splits a raw argument-list string on commas that are not
// enclosed in double quotes. Quoted substrings and nested parentheses pass
// through verbatim; splitting is relative to quoting only, never to
// parenthesis nesting. Each piece is trimmed of surrounding whitespace. A
// blank input yields an empty slice, not a single empty entry.
func SplitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var args []string
	var b strings.Builder
	inQuotes := false

	for _, r := range raw {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			args = append(args, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	args = append(args, strings.TrimSpace(b.String()))

	return args
}
