package git

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	calls []string
	dirs  []string
	err   error
}

func (f *fakeExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	f.dirs = append(f.dirs, dir)
	return f.err
}

func (f *fakeExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	return "", f.err
}

func TestRepositoryOperations(t *testing.T) {
	exec := &fakeExecutor{}
	repo := NewRepository(exec, "/project/application/OneTwo")

	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.Add(ctx, "."))
	require.NoError(t, repo.Commit(ctx, "initial commit"))
	require.NoError(t, repo.NewBranch(ctx, "development"))

	assert.Equal(t, []string{
		"git init",
		"git add .",
		"git commit --message initial commit",
		"git checkout -b development",
	}, exec.calls)

	for _, dir := range exec.dirs {
		assert.Equal(t, "/project/application/OneTwo", dir)
	}
}

func TestCommitAll(t *testing.T) {
	exec := &fakeExecutor{}
	repo := NewRepository(exec, "/project")

	require.NoError(t, repo.CommitAll(context.Background(), "scaffold horizon"))
	assert.Equal(t, []string{
		"git add .",
		"git commit --message scaffold horizon",
	}, exec.calls)
}

func TestOperationsWrapErrors(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("git is missing")}
	repo := NewRepository(exec, "/project")

	err := repo.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize git repository")

	err = repo.CommitAll(context.Background(), "message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stage files")
}
