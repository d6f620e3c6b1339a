package packages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laraforge/laraforge/internal/config"
	"github.com/laraforge/laraforge/internal/logging"
	"github.com/laraforge/laraforge/internal/scaffolding"
)

type fakeExecutor struct {
	calls []string
}

func (f *fakeExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return nil
}

func (f *fakeExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	return "", nil
}

func TestNormalize(t *testing.T) {
	normalized, err := Normalize([]string{"horizon", "dusk", "horizon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dusk", "horizon"}, normalized)

	normalized, err = Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, normalized)
}

func TestNormalizeEverything(t *testing.T) {
	normalized, err := Normalize([]string{Everything})
	require.NoError(t, err)
	assert.Equal(t, Known, normalized)

	// Mixing everything with explicit names changes nothing
	normalized, err = Normalize([]string{"telescope", Everything})
	require.NoError(t, err)
	assert.Equal(t, Known, normalized)
}

func TestNormalizeUnknown(t *testing.T) {
	_, err := Normalize([]string{"horizon", "nonexistent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown package "nonexistent"`)
}

func testInstaller(t *testing.T, exec *fakeExecutor) (*Installer, string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := config.Load("OneTwo", "application.local", nil, false)
	require.NoError(t, err)

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelError,
		Output: io.Discard,
	})

	projectDir := filepath.Join(t.TempDir(), "OneTwo")
	require.NoError(t, scaffolding.ProjectTree("OneTwo").Create(filepath.Dir(projectDir)))

	return NewInstaller(exec, cfg, logger, projectDir), projectDir
}

func TestInstallPlain(t *testing.T) {
	exec := &fakeExecutor{}
	installer, _ := testInstaller(t, exec)

	require.NoError(t, installer.Install(context.Background(), []string{"sanctum"}))

	assert.Equal(t, []string{
		"docker-compose up -d",
		"./run composer require laravel/sanctum",
		"./run artisan migrate:fresh",
		"docker-compose down",
		"git add .",
		"git commit --message scaffold sanctum",
	}, exec.calls)
}

func TestInstallAuthentication(t *testing.T) {
	exec := &fakeExecutor{}
	installer, _ := testInstaller(t, exec)

	require.NoError(t, installer.Install(context.Background(), []string{"authentication"}))

	assert.Equal(t, []string{
		"docker-compose up -d",
		"./run composer require laravel/ui",
		"./run artisan ui vue --auth",
		"./run artisan migrate:fresh",
		"docker-compose down",
		"git add .",
		"git commit --message scaffold authentication",
	}, exec.calls)
}

func TestInstallHorizon(t *testing.T) {
	exec := &fakeExecutor{}
	installer, projectDir := testInstaller(t, exec)

	kernelDir := filepath.Join(projectDir, "application", "OneTwo", "app", "Console")
	require.NoError(t, os.MkdirAll(kernelDir, 0755))
	kernel := filepath.Join(kernelDir, "Kernel.php")
	require.NoError(t, os.WriteFile(kernel, []byte(
		"        // $schedule->command('inspire')->hourly();\n",
	), 0644))

	supervisord := filepath.Join(projectDir, "configuration", "supervisor", "conf.d", "supervisord.conf")
	require.NoError(t, os.WriteFile(supervisord, []byte("[supervisord]\nnodaemon=true\n"), 0644))

	require.NoError(t, installer.Install(context.Background(), []string{"horizon"}))

	assert.Equal(t, []string{
		"docker-compose up -d",
		"./run composer require laravel/horizon",
		"./run artisan horizon:install",
		"./run artisan migrate:fresh",
		"docker-compose down",
		"git add .",
		"git commit --message scaffold horizon",
	}, exec.calls)

	patched, err := os.ReadFile(kernel)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "horizon:snapshot")

	conf, err := os.ReadFile(supervisord)
	require.NoError(t, err)
	assert.Contains(t, string(conf), "[program:horizon]")
}

func TestInstallHorizonAfterGeneration(t *testing.T) {
	exec := &fakeExecutor{}
	installer, projectDir := testInstaller(t, exec)

	// Generate the configuration files the way setup does with horizon
	// selected, so supervisord.conf already carries the horizon program.
	renderCtx := scaffolding.Context{
		ProjectName:      "OneTwo",
		ProjectDomain:    "application.local",
		UserID:           1000,
		GroupID:          1000,
		PostgresDB:       "onetwo",
		PostgresUser:     "username",
		PostgresPassword: "password",
		AdminerPort:      8080,
		MailhogPort:      8025,
		NodeTag:          "stretch",
		PHPTag:           "8-fpm",
		SSLCertificate:   "certificate.pem",
		SSLKey:           "key.pem",
	}
	require.NoError(t, scaffolding.GenerateConfigurationFiles(projectDir, renderCtx, []string{"horizon"}))

	kernelDir := filepath.Join(projectDir, "application", "OneTwo", "app", "Console")
	require.NoError(t, os.MkdirAll(kernelDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(kernelDir, "Kernel.php"), []byte(
		"        // $schedule->command('inspire')->hourly();\n",
	), 0644))

	require.NoError(t, installer.Install(context.Background(), []string{"horizon"}))

	conf, err := os.ReadFile(filepath.Join(projectDir, "configuration", "supervisor", "conf.d", "supervisord.conf"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(conf), "[program:horizon]"))
}

func TestInstallFailsOnMissingPatchTarget(t *testing.T) {
	exec := &fakeExecutor{}
	installer, _ := testInstaller(t, exec)

	// Kernel.php does not exist, so horizon fails after the compose phase
	err := installer.Install(context.Background(), []string{"horizon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install horizon")
}
