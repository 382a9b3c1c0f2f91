package tplforge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tplforge/tplforge/engines/types"
	"github.com/tplforge/tplforge/platform/script"
)

func TestRenderEndToEnd(t *testing.T) {
	t.Parallel()

	out, err := Render(context.Background(),
		"Hi {{ user.name }}!",
		map[string]any{"user": map[string]any{"name": "Ann"}},
		nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi Ann!", out)
}

func TestRenderShorthandEndToEnd(t *testing.T) {
	t.Parallel()

	funcs := []script.Definition{
		{Name: "double", Params: []string{"x"}, Body: "return x * 2"},
	}

	out, err := Render(context.Background(), `{{#func:double(21)}}`, nil, funcs)
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestScanAndRenderAgree(t *testing.T) {
	t.Parallel()

	source := `total: {{#func:calcTax(100)}}`

	missing := ScanTemplate(source, nil)
	assert.Equal(t, []string{"calcTax"}, missing)

	out, err := Render(context.Background(), source, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "total: [Function 'calcTax' not found]", out)
}

func TestScriptExecutionEndToEnd(t *testing.T) {
	t.Parallel()

	for _, engine := range []types.Type{types.Risor, types.Starlark} {
		engine := engine
		t.Run(engine.String(), func(t *testing.T) {
			t.Parallel()

			box, err := NewSandbox(engine, nil)
			require.NoError(t, err)

			fault := `error("boom")`
			if engine == types.Starlark {
				fault = `fail("boom")`
			}

			result := box.Execute(context.Background(),
				"log(\"a\")\nctx[\"y\"] = 1\n"+fault, map[string]any{}, nil)

			require.True(t, result.Failed())
			assert.Contains(t, result.Error, "boom")
			assert.Equal(t, []string{"a"}, result.Logs)
			assert.EqualValues(t, 1, result.FinalContext["y"])
		})
	}
}

func TestNewSandboxRejectsUnknownEngine(t *testing.T) {
	t.Parallel()

	_, err := NewSandbox(types.Type("lua"), nil)
	assert.Error(t, err)
}

func TestTypesParse(t *testing.T) {
	t.Parallel()

	got, err := types.Parse("starlark")
	require.NoError(t, err)
	assert.Equal(t, types.Starlark, got)

	_, err = types.Parse("wasm")
	assert.Error(t, err)
}
