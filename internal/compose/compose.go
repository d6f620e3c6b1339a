// Package compose drives the docker side of the pipeline: pulling a fresh
// Laravel application through a containerized Composer and bracketing
// commands with docker-compose up/down.
package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/laraforge/laraforge/internal/runner"
)

// Stack wraps the generated project's docker-compose stack.
type Stack struct {
	exec runner.Executor
	dir  string
}

// NewStack returns a Stack rooted at the project directory containing
// docker-compose.yml.
func NewStack(exec runner.Executor, dir string) *Stack {
	return &Stack{exec: exec, dir: dir}
}

// Up starts the stack detached.
func (s *Stack) Up(ctx context.Context) error {
	if err := s.exec.Run(ctx, s.dir, "docker-compose", "up", "-d"); err != nil {
		return fmt.Errorf("failed to start the stack: %w", err)
	}
	return nil
}

// Down stops the stack.
func (s *Stack) Down(ctx context.Context) error {
	if err := s.exec.Run(ctx, s.dir, "docker-compose", "down"); err != nil {
		return fmt.Errorf("failed to stop the stack: %w", err)
	}
	return nil
}

// With runs fn with the stack up and always tears the stack down
// afterwards, also when fn fails.
func (s *Stack) With(ctx context.Context, fn func(context.Context) error) error {
	if err := s.Up(ctx); err != nil {
		return err
	}

	fnErr := fn(ctx)

	if err := s.Down(ctx); err != nil {
		if fnErr != nil {
			return fnErr
		}
		return err
	}

	return fnErr
}

// Artisan runs an artisan command inside the running stack through the
// generated run helper.
func (s *Stack) Artisan(ctx context.Context, args ...string) error {
	return s.exec.Run(ctx, s.dir, "./run", append([]string{"artisan"}, args...)...)
}

// Composer runs a composer command inside the running stack through the
// generated run helper.
func (s *Stack) Composer(ctx context.Context, args ...string) error {
	return s.exec.Run(ctx, s.dir, "./run", append([]string{"composer"}, args...)...)
}

// MigrateDatabase migrates the application's database from scratch.
func (s *Stack) MigrateDatabase(ctx context.Context) error {
	return s.Artisan(ctx, "migrate:fresh")
}

// PullLaravel creates a fresh Laravel project named name under appDir using
// the official composer image, so no PHP toolchain is needed on the host.
// With development true the dev-develop branch is installed.
func PullLaravel(ctx context.Context, exec runner.Executor, appDir, name string, development bool) error {
	absDir, err := filepath.Abs(appDir)
	if err != nil {
		return fmt.Errorf("failed to resolve application directory: %w", err)
	}

	args := []string{
		"run",
		"--rm",
		"--user", fmt.Sprintf("%d:%d", os.Geteuid(), os.Getegid()),
		"--mount", fmt.Sprintf("type=bind,source=%s,target=/application", absDir),
		"--workdir", "/application",
		"composer", "create-project",
		"--prefer-dist",
		"--ignore-platform-reqs",
		"laravel/laravel", name,
	}

	if development {
		args = append(args, "dev-develop")
	}

	if err := exec.Run(ctx, appDir, "docker", args...); err != nil {
		return fmt.Errorf("failed to pull a fresh laravel project: %w", err)
	}

	return nil
}
