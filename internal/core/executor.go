package core

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Executor runs host subprocesses. A zero timeout leaves the run bounded only
// by the caller's context.
type Executor struct {
	timeout time.Duration
}

func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// ExecResult is the outcome of one subprocess run. Output holds stdout and
// stderr interleaved in the order they were written.
type ExecResult struct {
	Output   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
	Error    error
}

// Execute runs cmd to completion. The returned error is reserved for requests
// that could not be attempted; a process that fails to start or exits non-zero
// is reported through ExecResult.Error.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*ExecResult, error) {
	if cmd.Cmd == "" {
		return nil, usageError("exec", "a program name is required")
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var combined bytes.Buffer
	proc := exec.CommandContext(ctx, cmd.Cmd, cmd.Args...)
	proc.Stdout = &combined
	proc.Stderr = &combined

	start := time.Now()
	runErr := proc.Run()

	res := &ExecResult{
		Output:   strings.TrimSpace(combined.String()),
		Duration: time.Since(start),
		Error:    runErr,
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	res.TimedOut = runErr != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)

	return res, nil
}
