// Package packages installs the optional Laravel add-on packages selected
// with --with: composer/artisan runs inside the stack, regex patches of the
// generated sources, and a commit per add-on.
package packages

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/laraforge/laraforge/internal/compose"
	"github.com/laraforge/laraforge/internal/config"
	"github.com/laraforge/laraforge/internal/git"
	"github.com/laraforge/laraforge/internal/logging"
	"github.com/laraforge/laraforge/internal/runner"
	"github.com/laraforge/laraforge/internal/scaffolding"
)

// Everything selects all known add-ons.
const Everything = "everything"

// Known lists the supported add-on packages in installation order.
var Known = []string{
	"authentication",
	"dusk",
	"horizon",
	"sanctum",
	"scout",
	"socialite",
	"telescope",
}

// Installer installs add-on packages into a scaffolded project.
type Installer struct {
	exec       runner.Executor
	cfg        *config.Config
	logger     logging.Logger
	projectDir string
}

// NewInstaller returns an Installer for the project rooted at projectDir.
func NewInstaller(exec runner.Executor, cfg *config.Config, logger logging.Logger, projectDir string) *Installer {
	return &Installer{
		exec:       exec,
		cfg:        cfg,
		logger:     logger.WithComponent("packages"),
		projectDir: projectDir,
	}
}

// Normalize expands "everything", removes duplicates, and returns the
// selection in installation order. Unknown names are an error.
func Normalize(selection []string) ([]string, error) {
	selected := make(map[string]bool, len(selection))
	for _, name := range selection {
		if name == Everything {
			for _, known := range Known {
				selected[known] = true
			}
			continue
		}

		if !isKnown(name) {
			return nil, fmt.Errorf("unknown package %q (available: %v)", name, Known)
		}
		selected[name] = true
	}

	result := make([]string, 0, len(selected))
	for name := range selected {
		result = append(result, name)
	}
	sort.Slice(result, func(i, j int) bool {
		return order(result[i]) < order(result[j])
	})

	return result, nil
}

func isKnown(name string) bool {
	return order(name) < len(Known)
}

func order(name string) int {
	for i, known := range Known {
		if known == name {
			return i
		}
	}
	return len(Known)
}

// Install installs the given add-ons in order.
func (i *Installer) Install(ctx context.Context, names []string) error {
	for _, name := range names {
		i.logger.Info(ctx, "installing add-on package", "package", name)

		var err error
		switch name {
		case "authentication":
			err = i.installAuthentication(ctx)
		case "dusk":
			err = i.installDusk(ctx)
		case "horizon":
			err = i.installHorizon(ctx)
		case "telescope":
			err = i.installTelescope(ctx)
		case "sanctum", "scout", "socialite":
			err = i.installPlain(ctx, name)
		default:
			err = fmt.Errorf("unknown package %q", name)
		}

		if err != nil {
			return fmt.Errorf("failed to install %s: %w", name, err)
		}
	}

	return nil
}

func (i *Installer) stack() *compose.Stack {
	return compose.NewStack(i.exec, i.projectDir)
}

func (i *Installer) appDir() string {
	return filepath.Join(i.projectDir, "application", i.cfg.Project.Name)
}

func (i *Installer) commit(ctx context.Context, name string) error {
	repo := git.NewRepository(i.exec, i.appDir())
	return repo.CommitAll(ctx, "scaffold "+name)
}

func (i *Installer) installAuthentication(ctx context.Context) error {
	err := i.stack().With(ctx, func(ctx context.Context) error {
		stack := i.stack()
		if err := stack.Composer(ctx, "require", "laravel/ui"); err != nil {
			return err
		}
		if err := stack.Artisan(ctx, "ui", "vue", "--auth"); err != nil {
			return err
		}
		return stack.MigrateDatabase(ctx)
	})
	if err != nil {
		return err
	}

	return i.commit(ctx, "authentication")
}

func (i *Installer) installDusk(ctx context.Context) error {
	err := i.stack().With(ctx, func(ctx context.Context) error {
		stack := i.stack()
		if err := stack.Composer(ctx, "require", "laravel/dusk", "--dev"); err != nil {
			return err
		}
		if err := stack.Artisan(ctx, "dusk:install"); err != nil {
			return err
		}
		return stack.MigrateDatabase(ctx)
	})
	if err != nil {
		return err
	}

	testCase := filepath.Join(i.appDir(), "tests", "DuskTestCase.php")
	if err := patchDuskTestCase(testCase); err != nil {
		return err
	}

	return i.commit(ctx, "dusk")
}

func (i *Installer) installHorizon(ctx context.Context) error {
	err := i.stack().With(ctx, func(ctx context.Context) error {
		stack := i.stack()
		if err := stack.Composer(ctx, "require", "laravel/horizon"); err != nil {
			return err
		}
		if err := stack.Artisan(ctx, "horizon:install"); err != nil {
			return err
		}
		return stack.MigrateDatabase(ctx)
	})
	if err != nil {
		return err
	}

	kernel := filepath.Join(i.appDir(), "app", "Console", "Kernel.php")
	if err := patchScheduleKernel(kernel); err != nil {
		return err
	}

	supervisord := filepath.Join(i.projectDir, "configuration", "supervisor", "conf.d", "supervisord.conf")
	if err := appendIfMissing(supervisord, "[program:horizon]", scaffolding.SupervisorHorizonProgram); err != nil {
		return err
	}

	return i.commit(ctx, "horizon")
}

func (i *Installer) installTelescope(ctx context.Context) error {
	err := i.stack().With(ctx, func(ctx context.Context) error {
		stack := i.stack()
		if err := stack.Composer(ctx, "require", "laravel/telescope", "--dev"); err != nil {
			return err
		}
		if err := stack.Artisan(ctx, "telescope:install"); err != nil {
			return err
		}
		return stack.MigrateDatabase(ctx)
	})
	if err != nil {
		return err
	}

	provider := filepath.Join(i.appDir(), "app", "Providers", "TelescopeServiceProvider.php")
	if err := patchTelescopeProvider(provider); err != nil {
		return err
	}

	composerJSON := filepath.Join(i.appDir(), "composer.json")
	if err := patchComposerDontDiscover(composerJSON); err != nil {
		return err
	}

	return i.commit(ctx, "telescope")
}

// installPlain covers the add-ons that only need a composer require and a
// migration (sanctum, scout, socialite).
func (i *Installer) installPlain(ctx context.Context, name string) error {
	err := i.stack().With(ctx, func(ctx context.Context) error {
		stack := i.stack()
		if err := stack.Composer(ctx, "require", "laravel/"+name); err != nil {
			return err
		}
		return stack.MigrateDatabase(ctx)
	})
	if err != nil {
		return err
	}

	return i.commit(ctx, name)
}
