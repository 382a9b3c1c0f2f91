// Package preview prepares rendered HTML output for display inside an
// embedding frame. The engine itself renders whatever the template says;
// this layer strips scripting and other unsafe markup before the string
// reaches a preview surface.
package preview

import "github.com/microcosm-cc/bluemonday"

// Sanitizer cleans rendered HTML. Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer with a user-generated-content policy: common
// formatting and structural elements survive, script and event-handler
// attributes do not.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// Sanitize returns a cleaned copy of the rendered HTML.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
