package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands in a directory and returns stdout.
// On failure, the returned stdout is still populated when the command produced any.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// CommandError wraps a failed git invocation with context.
type CommandError struct {
	Op       string   // Operation that failed (e.g., "stage", "commit")
	Args     []string // Arguments passed to git
	Output   string   // Trimmed stderr, or stdout when stderr is empty
	ExitCode int      // Process exit code, -1 if the process did not run
	Err      error    // Underlying error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := stdout.String()
	if err == nil {
		return out, nil
	}

	cmdErr := &CommandError{
		Op:       name + " " + firstArg(args),
		Args:     args,
		Output:   strings.TrimSpace(stderr.String()),
		ExitCode: -1,
		Err:      err,
	}
	if cmdErr.Output == "" {
		cmdErr.Output = strings.TrimSpace(out)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return out, cmdErr
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
