package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty string yields empty slice",
			raw:  "",
			want: []string{},
		},
		{
			name: "blank string yields empty slice",
			raw:  "   ",
			want: []string{},
		},
		{
			name: "single argument",
			raw:  "this.qty",
			want: []string{"this.qty"},
		},
		{
			name: "multiple arguments",
			raw:  "this.qty, this.price, 3",
			want: []string{"this.qty", "this.price", "3"},
		},
		{
			name: "commas inside quotes are not split points",
			raw:  `a, "b,c", d`,
			want: []string{"a", `"b,c"`, "d"},
		},
		{
			name: "splitting ignores parenthesis nesting",
			raw:  "foo(a, b), c",
			want: []string{"foo(a", "b)", "c"},
		},
		{
			name: "property paths survive",
			raw:  "order.items.total, user.name",
			want: []string{"order.items.total", "user.name"},
		},
		{
			name: "trailing comma yields empty last entry",
			raw:  "a,",
			want: []string{"a", ""},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitArgs(tt.raw))
		})
	}
}

func TestSplitArgsQuoteAwareExactCount(t *testing.T) {
	t.Parallel()

	got := SplitArgs(`a, "b,c", d`)
	assert.Len(t, got, 3)
}
