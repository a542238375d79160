// Package cmdexec runs external tools behind an interface so adapters can be
// tested without the binaries installed.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the captured output of one process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("%s: %w", name, ctxErr)
		}
		return result, &Error{Name: name, ExitCode: result.ExitCode, Stderr: Tail(result.Stderr, 4), Err: err}
	}
	return result, nil
}

// Error describes a failed process with the end of its stderr.
type Error struct {
	Name     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d: %v", e.Name, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Name, e.ExitCode, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Tail returns the last n non-empty lines of s joined by "; ".
func Tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			kept = append([]string{l}, kept...)
		}
	}
	return strings.Join(kept, "; ")
}
