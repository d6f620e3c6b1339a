// Package git wraps the git operations performed on the generated
// application repository.
package git

import (
	"context"
	"fmt"

	"github.com/laraforge/laraforge/internal/runner"
)

// Repository is a git repository rooted at dir.
type Repository struct {
	exec runner.Executor
	dir  string
}

// NewRepository returns a Repository handle for dir.
func NewRepository(exec runner.Executor, dir string) *Repository {
	return &Repository{exec: exec, dir: dir}
}

// Init initializes the repository.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.exec.Run(ctx, r.dir, "git", "init"); err != nil {
		return fmt.Errorf("failed to initialize git repository: %w", err)
	}
	return nil
}

// Add stages the given paths.
func (r *Repository) Add(ctx context.Context, paths ...string) error {
	if err := r.exec.Run(ctx, r.dir, "git", append([]string{"add"}, paths...)...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// Commit records a commit with the given message.
func (r *Repository) Commit(ctx context.Context, message string) error {
	if err := r.exec.Run(ctx, r.dir, "git", "commit", "--message", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// NewBranch creates and checks out a new branch.
func (r *Repository) NewBranch(ctx context.Context, name string) error {
	if err := r.exec.Run(ctx, r.dir, "git", "checkout", "-b", name); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// CommitAll stages everything and commits with the given message.
func (r *Repository) CommitAll(ctx context.Context, message string) error {
	if err := r.Add(ctx, "."); err != nil {
		return err
	}
	return r.Commit(ctx, message)
}
