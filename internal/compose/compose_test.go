package compose

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records every invocation instead of running anything.
type fakeExecutor struct {
	calls []string
	fail  map[string]error
}

func (f *fakeExecutor) record(dir, name string, args ...string) string {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	return call
}

func (f *fakeExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	call := f.record(dir, name, args...)
	for prefix, err := range f.fail {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.record(dir, name, args...)
	return "", nil
}

func TestStackUpDown(t *testing.T) {
	exec := &fakeExecutor{}
	stack := NewStack(exec, "/project")

	require.NoError(t, stack.Up(context.Background()))
	require.NoError(t, stack.Down(context.Background()))

	assert.Equal(t, []string{
		"docker-compose up -d",
		"docker-compose down",
	}, exec.calls)
}

func TestStackWith(t *testing.T) {
	exec := &fakeExecutor{}
	stack := NewStack(exec, "/project")

	err := stack.With(context.Background(), func(ctx context.Context) error {
		return stack.Artisan(ctx, "migrate:fresh")
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docker-compose up -d",
		"./run artisan migrate:fresh",
		"docker-compose down",
	}, exec.calls)
}

func TestStackWithTearsDownOnError(t *testing.T) {
	exec := &fakeExecutor{}
	stack := NewStack(exec, "/project")

	failure := fmt.Errorf("artisan blew up")
	err := stack.With(context.Background(), func(ctx context.Context) error {
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []string{
		"docker-compose up -d",
		"docker-compose down",
	}, exec.calls)
}

func TestStackWithReportsFnErrorOverDownError(t *testing.T) {
	fnErr := fmt.Errorf("fn failed")
	exec := &fakeExecutor{fail: map[string]error{"docker-compose down": fmt.Errorf("down failed")}}
	stack := NewStack(exec, "/project")

	err := stack.With(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
}

func TestComposer(t *testing.T) {
	exec := &fakeExecutor{}
	stack := NewStack(exec, "/project")

	require.NoError(t, stack.Composer(context.Background(), "require", "laravel/horizon"))
	assert.Equal(t, []string{"./run composer require laravel/horizon"}, exec.calls)
}

func TestMigrateDatabase(t *testing.T) {
	exec := &fakeExecutor{}
	stack := NewStack(exec, "/project")

	require.NoError(t, stack.MigrateDatabase(context.Background()))
	assert.Equal(t, []string{"./run artisan migrate:fresh"}, exec.calls)
}

func TestPullLaravel(t *testing.T) {
	exec := &fakeExecutor{}
	appDir := t.TempDir()

	require.NoError(t, PullLaravel(context.Background(), exec, appDir, "OneTwo", false))
	require.Len(t, exec.calls, 1)

	call := exec.calls[0]
	assert.True(t, strings.HasPrefix(call, "docker run --rm"))
	assert.Contains(t, call, fmt.Sprintf("--user %d:%d", os.Geteuid(), os.Getegid()))
	assert.Contains(t, call, fmt.Sprintf("--mount type=bind,source=%s,target=/application", appDir))
	assert.Contains(t, call, "--workdir /application")
	assert.Contains(t, call, "composer create-project --prefer-dist --ignore-platform-reqs laravel/laravel OneTwo")
	assert.NotContains(t, call, "dev-develop")
}

func TestPullLaravelDevelopment(t *testing.T) {
	exec := &fakeExecutor{}

	require.NoError(t, PullLaravel(context.Background(), exec, t.TempDir(), "OneTwo", true))
	require.Len(t, exec.calls, 1)
	assert.True(t, strings.HasSuffix(exec.calls[0], "laravel/laravel OneTwo dev-develop"))
}
