package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tplforge/tplforge/platform/script"
)

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestCompileAndInvoke(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	fn, err := c.Compile(script.Definition{
		Name:   "add",
		Params: []string{"a", "b"},
		Body:   "return a + b",
	})
	require.NoError(t, err)

	out, err := fn(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 5, out)
}

func TestCompileParameterOrder(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	fn, err := c.Compile(script.Definition{
		Name:   "describe",
		Params: []string{"first", "second"},
		Body:   `return first + "/" + second`,
	})
	require.NoError(t, err)

	out, err := fn(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", out)
}

func TestCompileMissingArgumentsBindNil(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	fn, err := c.Compile(script.Definition{
		Name:   "maybe",
		Params: []string{"x"},
		Body:   `if x == nil { return "none" }` + "\n" + `return x`,
	})
	require.NoError(t, err)

	out, err := fn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "none", out)

	out, err = fn(context.Background(), "here")
	require.NoError(t, err)
	assert.Equal(t, "here", out)
}

func TestCompileExtraArgumentsDropped(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	fn, err := c.Compile(script.Definition{
		Name:   "ident",
		Params: []string{"x"},
		Body:   "return x",
	})
	require.NoError(t, err)

	out, err := fn(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out)
}

func TestCompileInvalidBody(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	_, err := c.Compile(script.Definition{
		Name:   "broken",
		Params: []string{"x"},
		Body:   "return (",
	})
	assert.ErrorIs(t, err, ErrCompileFailed)
}

func TestCompileInvalidDefinition(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	_, err := c.Compile(script.Definition{Name: "9bad", Body: "return 1"})
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = c.Compile(script.Definition{
		Name:   "ok",
		Params: []string{"not-an-ident"},
		Body:   "return 1",
	})
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestInvocationFaultPropagates(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	fn, err := c.Compile(script.Definition{
		Name:   "boomer",
		Params: nil,
		Body:   `error("zap")`,
	})
	require.NoError(t, err)

	_, err = fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zap")
}

func TestCompileScriptEmptySource(t *testing.T) {
	t.Parallel()

	_, err := CompileScript("   ", nil)
	assert.ErrorIs(t, err, ErrContentEmpty)
}
