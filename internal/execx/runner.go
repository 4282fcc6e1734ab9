// Package execx runs external commands with a deadline and captured
// output. Callers get an exit code and both streams back regardless of
// how the process ended, so command failures stay inspectable instead of
// collapsing into an opaque error.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds commands whose caller does not supply a timeout.
const DefaultTimeout = 120 * time.Second

// Result captures the outcome of one command invocation.
type Result struct {
	// ExitCode is the process exit code. 124 marks a timeout, -1 a
	// process that could not be started.
	ExitCode int

	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error, or the start failure.
	Stderr string

	// TimedOut reports whether the deadline killed the process.
	TimedOut bool
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and waits for it to finish or for the
	// timeout to expire, whichever comes first.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) Result
}

// OSRunner implements Runner with real processes.
type OSRunner struct{}

// NewOSRunner creates a new OSRunner.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes name with args, no shell involved, and captures both
// output streams. Exit code 124 is used for timeouts, matching the
// convention of timeout(1).
func (r *OSRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Start(); err != nil {
		return Result{
			ExitCode: -1,
			Stderr:   "failed to start " + name + ": " + err.Error(),
		}
	}

	waitErr := cmd.Wait()

	timedOut := ctx.Err() == context.DeadlineExceeded
	if timedOut {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}

	exitCode := 0
	switch {
	case timedOut:
		exitCode = 124
	case waitErr != nil:
		if ee, ok := waitErr.(*exec.ExitError); ok && ee.ProcessState != nil {
			exitCode = ee.ProcessState.ExitCode()
		} else {
			exitCode = 1
		}
	case cmd.ProcessState != nil:
		exitCode = cmd.ProcessState.ExitCode()
	}

	return Result{
		ExitCode: exitCode,
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		TimedOut: timedOut,
	}
}
