package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "single call with literal argument",
			source: `{{#func:double(21)}}`,
			want:   `{{func "double" 21}}`,
		},
		{
			name:   "multiple arguments",
			source: `{{#func:sum(this.a, this.b)}}`,
			want:   `{{func "sum" this.a this.b}}`,
		},
		{
			name:   "zero arguments",
			source: `{{#func:now()}}`,
			want:   `{{func "now"}}`,
		},
		{
			name:   "quoted argument keeps quotes",
			source: `{{#func:greet("Ann")}}`,
			want:   `{{func "greet" "Ann"}}`,
		},
		{
			name:   "commas inside a quoted argument become spaces",
			source: `{{#func:join("a,b", this.x)}}`,
			want:   `{{func "join" "a b" this.x}}`,
		},
		{
			name:   "surrounding content is preserved",
			source: `before {{#func:double(2)}} after`,
			want:   `before {{func "double" 2}} after`,
		},
		{
			name:   "multiple occurrences",
			source: `{{#func:a(1)}}{{#func:b(2)}}`,
			want:   `{{func "a" 1}}{{func "b" 2}}`,
		},
		{
			name:   "native constructs pass through",
			source: `{{#if ok}}{{#each items}}{{@key}}={{this}}{{#unless @last}},{{/unless}}{{/each}}{{else}}none{{/if}}`,
			want:   `{{#if ok}}{{#each items}}{{@key}}={{this}}{{#unless @last}},{{/unless}}{{/each}}{{else}}none{{/if}}`,
		},
		{
			name:   "plain interpolation passes through",
			source: `Hi {{ user.name }}!`,
			want:   `Hi {{ user.name }}!`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Preprocess(tt.source))
		})
	}
}

// The rewrite is a single pass of pattern matching over the whole string; it
// does not understand string literals, so a call marker inside quotes is
// rewritten too. This locks in that limitation.
func TestPreprocessRewritesInsideQuotedLiterals(t *testing.T) {
	t.Parallel()

	source := `SELECT '{{#func:id(1)}}' FROM t`
	assert.Equal(t, `SELECT '{{func "id" 1}}' FROM t`, Preprocess(source))
}
