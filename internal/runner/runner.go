// Package runner executes the external tools the pipeline depends on
// (docker, docker-compose, git, the generated run helper). Commands go
// through an allowlist and argument hardening before they reach the shell.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/laraforge/laraforge/internal/logging"
	"github.com/laraforge/laraforge/internal/validation"
)

// Executor runs external commands. Tests substitute a recording
// implementation so no external tool is needed.
type Executor interface {
	// Run executes name with args in dir, streaming output to the
	// terminal. An empty dir means the current working directory.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes name with args in dir and captures stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// allowedCommands is the allowlist of external tools the pipeline may
// invoke. The generated run helper is always addressed as ./run relative to
// the project directory.
var allowedCommands = map[string]bool{
	"docker":         true,
	"docker-compose": true,
	"git":            true,
	"./run":          true,
}

// Runner is the Executor backed by os/exec.
type Runner struct {
	logger logging.Logger
}

// New creates a Runner.
func New(logger logging.Logger) *Runner {
	return &Runner{logger: logger.WithComponent("runner")}
}

// Run implements Executor.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd, err := r.command(ctx, dir, name, args...)
	if err != nil {
		return err
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %s failed: %w", name, strings.Join(args, " "), err)
	}

	return nil
}

// Output implements Executor.
func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd, err := r.command(ctx, dir, name, args...)
	if err != nil {
		return "", err
	}

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("command %s %s failed: %w", name, strings.Join(args, " "), err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (r *Runner) command(ctx context.Context, dir, name string, args ...string) (*exec.Cmd, error) {
	if err := validation.ValidateCommand(name, allowedCommands); err != nil {
		return nil, err
	}
	if err := validation.ValidateArguments(args); err != nil {
		return nil, fmt.Errorf("refusing to run %s: %w", name, err)
	}

	r.logger.Debug(ctx, "running external command", "command", name, "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	return cmd, nil
}
