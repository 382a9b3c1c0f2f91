package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tplforge/tplforge/platform"
	"github.com/tplforge/tplforge/platform/script"
)

func newTestSandbox(t *testing.T, opts ...Option) *Sandbox {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestExecuteSuccess(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(),
		`ctx["y"] = 1`, map[string]any{"x": "keep"}, nil)

	require.False(t, result.Failed())
	assert.Equal(t, platform.ErrorKindNone, result.Kind)
	assert.Equal(t, "keep", result.FinalContext["x"])
	assert.EqualValues(t, 1, result.FinalContext["y"])
}

func TestExecuteLogsInCallOrder(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(),
		"log(\"a\")\nlog(\"b\")\nlog(42)", map[string]any{}, nil)

	require.False(t, result.Failed())
	assert.Equal(t, []string{"a", "b", "42"}, result.Logs)
}

func TestExecuteLogPrettyPrintsStructures(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(),
		`log({"a": 1})`, map[string]any{}, nil)

	require.False(t, result.Failed())
	require.Len(t, result.Logs, 1)
	assert.Contains(t, result.Logs[0], "\"a\": 1")
}

func TestExecuteFaultPreservesProgress(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(),
		"log(\"a\")\nctx[\"y\"] = 1\nfail(\"boom\")", map[string]any{}, nil)

	require.True(t, result.Failed())
	assert.Equal(t, platform.ErrorKindRuntime, result.Kind)
	assert.Equal(t, "boom", result.Error)
	assert.Equal(t, []string{"a"}, result.Logs)
	assert.EqualValues(t, 1, result.FinalContext["y"])
}

func TestExecuteNeverMutatesCallerContext(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	original := map[string]any{
		"user": map[string]any{"name": "Ann"},
	}
	snapshot := map[string]any{
		"user": map[string]any{"name": "Ann"},
	}

	result := s.Execute(context.Background(),
		`ctx["user"]["name"] = "Bob"`, original, nil)

	require.False(t, result.Failed())
	assert.Equal(t, "Bob", result.FinalContext["user"].(map[string]any)["name"])
	if diff := cmp.Diff(snapshot, original); diff != "" {
		t.Errorf("caller context mutated (-want +got):\n%s", diff)
	}
}

func TestExecuteUserFunctionsAvailable(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	funcs := []script.Definition{
		{Name: "double", Params: []string{"x"}, Body: "return x * 2"},
	}

	result := s.Execute(context.Background(),
		`ctx["z"] = double(5)`, map[string]any{}, funcs)

	require.False(t, result.Failed())
	assert.EqualValues(t, 10, result.FinalContext["z"])
}

func TestExecuteCompileError(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(), "def broken(", map[string]any{}, nil)

	require.True(t, result.Failed())
	assert.Equal(t, platform.ErrorKindCompile, result.Kind)
	require.NotNil(t, result.FinalContext)
}

func TestExecuteBudgetExceeded(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t, WithTimeout(20*time.Millisecond))

	result := s.Execute(context.Background(),
		"while True:\n    pass", map[string]any{}, nil)

	require.True(t, result.Failed())
	assert.Equal(t, platform.ErrorKindBudget, result.Kind)
	assert.Contains(t, result.Error, "execution budget exceeded")
}

func TestExecuteCallerDeadlineIsNotBudget(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result := s.Execute(ctx, "while True:\n    pass", map[string]any{}, nil)

	require.True(t, result.Failed())
	assert.Equal(t, platform.ErrorKindRuntime, result.Kind)
	assert.NotContains(t, result.Error, "execution budget exceeded")
}

func TestExecutePrintRoutesToLogs(t *testing.T) {
	t.Parallel()
	s := newTestSandbox(t)

	result := s.Execute(context.Background(), `print("hello")`, map[string]any{}, nil)

	require.False(t, result.Failed())
	assert.Equal(t, []string{"hello"}, result.Logs)
}
