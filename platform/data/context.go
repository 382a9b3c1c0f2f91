// Package data handles the context objects templates and scripts read and write.
package data

import (
	"github.com/mohae/deepcopy"
)

// Clone deep-copies a caller-supplied context so a sandbox run never shares
// structure with the original. A nil context yields an empty map, the
// degraded fallback for callers whose context editor produced nothing.
func Clone(ctx map[string]any) map[string]any {
	if ctx == nil {
		return map[string]any{}
	}

	cloned, ok := deepcopy.Copy(ctx).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return cloned
}
