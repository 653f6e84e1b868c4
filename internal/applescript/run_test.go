package applescript

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shellRunner returns a runner that executes scripts through /bin/sh instead
// of osascript so tests stay hermetic. sh reads the script from stdin when
// invoked without arguments, matching the stdin-feed contract.
func shellRunner(timeout time.Duration) *OsascriptRunner {
	r := NewRunner(timeout, nil)
	r.Binary = "/bin/sh"
	r.Args = nil
	return r
}

func TestRunTrimsOutput(t *testing.T) {
	r := shellRunner(0)
	out, err := r.Run(context.Background(), "printf '  result line  \\n\\n'")
	require.NoError(t, err)
	assert.Equal(t, "result line", out)
}

func TestRunPreservesInternalStructure(t *testing.T) {
	r := shellRunner(0)
	out, err := r.Run(context.Background(), "printf 'a\\n  b\\nc\\n'")
	require.NoError(t, err)
	// Only leading/trailing whitespace is stripped; inner lines keep theirs.
	assert.Equal(t, "a\n  b\nc", out)
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	r := shellRunner(300 * time.Millisecond)

	start := time.Now()
	_, err := r.Run(context.Background(), "sleep 30")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "expected ErrTimeout, got %v", err)
	// The call must return within a small margin of the limit, which also
	// demonstrates the child was killed rather than waited on.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRunSurfacesStderr(t *testing.T) {
	r := shellRunner(0)
	_, err := r.Run(context.Background(), "echo 'no such mailbox' >&2; exit 3")

	require.Error(t, err)
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, "no such mailbox", scriptErr.Stderr)
	assert.Equal(t, 3, scriptErr.ExitCode)
}

func TestRunNonZeroExitWithoutStderr(t *testing.T) {
	r := shellRunner(0)
	_, err := r.Run(context.Background(), "exit 1")

	require.Error(t, err)
	var scriptErr *ScriptError
	assert.False(t, errors.As(err, &scriptErr), "empty stderr should not produce a ScriptError")
}

func TestRunLaunchFailure(t *testing.T) {
	r := NewRunner(0, nil)
	r.Binary = "/nonexistent/interpreter"
	r.Args = nil

	_, err := r.Run(context.Background(), "return 1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestRunRespectsCallerContext(t *testing.T) {
	r := shellRunner(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "echo hi")
	require.Error(t, err)
}
