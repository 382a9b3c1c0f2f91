package helpers

import (
	"encoding/json"
	"fmt"
)

// FormatLogValue renders a script value for the execution log. Structured
// values (maps and lists) are pretty-printed as indented JSON, strings pass
// through as-is, and everything else uses its natural string form.
func FormatLogValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case map[string]any, []any:
		if b, err := json.MarshalIndent(val, "", "  "); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}
