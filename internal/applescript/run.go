package applescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout is the wall-clock limit for a single osascript invocation.
// Mail.app enumerates messages lazily, so large mailboxes can legitimately
// take a long time; anything beyond this is treated as a hang.
const DefaultTimeout = 120 * time.Second

// ErrTimeout is returned when the interpreter exceeds the configured
// wall-clock limit. The child process is killed before the error is returned.
var ErrTimeout = errors.New("applescript execution timed out")

// ScriptError reports an interpreter run that exited non-zero with
// diagnostics on stderr. The stderr text is surfaced verbatim.
type ScriptError struct {
	Stderr   string
	ExitCode int
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("osascript exited with code %d: %s", e.ExitCode, e.Stderr)
}

// Runner executes a rendered script and returns its trimmed standard output.
// Implementations must bound execution time and must not leave a child
// process running after returning.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OsascriptRunner runs scripts through the osascript binary. The script is
// supplied on standard input rather than as an argument: generated scripts
// grow to many kilobytes and argv would hit OS length limits and add another
// quoting layer.
type OsascriptRunner struct {
	// Binary is the interpreter to invoke. Defaults to "osascript".
	Binary string

	// Args are passed before the script is fed on stdin. Defaults to
	// {"-"} which tells osascript to read the script from stdin.
	Args []string

	// Timeout bounds one invocation. Zero means DefaultTimeout.
	Timeout time.Duration

	logger *slog.Logger
}

// NewRunner returns an OsascriptRunner with the given timeout.
// A zero timeout selects DefaultTimeout.
func NewRunner(timeout time.Duration, logger *slog.Logger) *OsascriptRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &OsascriptRunner{
		Binary:  "osascript",
		Args:    []string{"-"},
		Timeout: timeout,
		logger:  logger,
	}
}

// Run executes the script and returns trimmed stdout. Error taxonomy:
//
//   - ErrTimeout (wrapped) when the deadline is exceeded; the child is killed
//   - *ScriptError when the process exits non-zero with non-empty stderr
//   - a wrapped generic error for launch failures (missing binary, permission)
func (r *OsascriptRunner) Run(ctx context.Context, script string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := r.Binary
	if binary == "" {
		binary = "osascript"
	}

	cmd := exec.CommandContext(runCtx, binary, r.Args...)
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Give the process a moment to die after the kill signal before Wait
	// gives up on collecting it.
	cmd.WaitDelay = 5 * time.Second

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		r.logger.Warn("script execution timed out",
			slog.Duration("timeout", timeout),
			slog.Int("script_bytes", len(script)))
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if err != nil {
		errText := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && errText != "" {
			return "", &ScriptError{Stderr: errText, ExitCode: exitErr.ExitCode()}
		}
		return "", fmt.Errorf("failed to run %s: %w", binary, err)
	}

	r.logger.Debug("script executed",
		slog.Duration("duration", duration),
		slog.Int("script_bytes", len(script)),
		slog.Int("output_bytes", stdout.Len()))

	return strings.TrimSpace(stdout.String()), nil
}
