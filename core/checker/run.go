package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"syscall"
)

// Shell-compatible status codes for invocations that never ran.
const (
	// ExitNotFound is returned when the checker executable can't be
	// located.
	ExitNotFound = 127
	// ExitNotRunnable is returned when the checker was found but could
	// not be started.
	ExitNotRunnable = 126
)

// ExitError carries the status code of a failed checker invocation so it
// can be propagated as the process exit code.
type ExitError struct {
	Code  int
	cause error
}

func (e *ExitError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("checker exited with status %d: %v", e.Code, e.cause)
	}
	return fmt.Sprintf("checker exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.cause
}

// ExitCode maps an error from Run to the status the wrapper should exit
// with: 0 for nil, the carried code for an ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Stdio holds the streams the checker inherits.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run resolves the checker executable and runs it synchronously with the
// forwarded arguments appended after the configured flags. The child
// inherits the given streams unmodified. A non-zero child status is
// returned as an ExitError with the child's code; a checker that can't
// be located yields ExitNotFound without anything being executed.
func (c *Command) Run(ctx context.Context, forwarded []string, stdio Stdio) error {
	path, err := exec.LookPath(c.Checker)
	if err != nil {
		code := ExitNotFound
		if errors.Is(err, fs.ErrPermission) {
			code = ExitNotRunnable
		}
		return &ExitError{Code: code, cause: err}
	}

	argv := c.Argv(forwarded)
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	if err := cmd.Start(); err != nil {
		return &ExitError{Code: ExitNotRunnable, cause: err}
	}

	err = cmd.Wait()
	if err == nil {
		return nil
	}

	var execErr *exec.ExitError
	if errors.As(err, &execErr) {
		code := execErr.ExitCode()
		// Killed by a signal, report the way a shell would.
		if ws, ok := execErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			code = 128 + int(ws.Signal())
		}
		return &ExitError{Code: code}
	}

	return &ExitError{Code: 1, cause: err}
}
