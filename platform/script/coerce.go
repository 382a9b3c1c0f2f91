package script

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceArg converts argument text supplied by an editing surface (or the
// CLI) into a typed value for invoking a Callable. Booleans, null, numbers
// and JSON literals are detected first; anything else is passed through as a
// plain string.
func CoerceArg(text string) any {
	s := strings.TrimSpace(text)

	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if len(s) > 0 && (s[0] == '{' || s[0] == '[' || s[0] == '"') {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}
