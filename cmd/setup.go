package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/laraforge/laraforge/internal/certs"
	"github.com/laraforge/laraforge/internal/compose"
	"github.com/laraforge/laraforge/internal/config"
	"github.com/laraforge/laraforge/internal/envfile"
	"github.com/laraforge/laraforge/internal/git"
	"github.com/laraforge/laraforge/internal/logging"
	"github.com/laraforge/laraforge/internal/packages"
	"github.com/laraforge/laraforge/internal/runner"
	"github.com/laraforge/laraforge/internal/scaffolding"
)

var setupCmd = &cobra.Command{
	Use:   "setup <ProjectName>",
	Short: "Scaffold a new Dockerized Laravel project",
	Long: `Scaffold a new Laravel project running on Docker.

The project name must be PascalCase and a directory with that name must not
yet exist in the current working directory. The pipeline creates the
directory skeleton, generates a self-signed TLS certificate for the domain,
renders the nginx/supervisor/docker-compose configuration, pulls a fresh
Laravel application through a containerized Composer, initializes a git
repository, rewrites the application's .env, migrates the database, and
installs the selected add-on packages.

There is no rollback: when a step fails the pipeline stops and partial
output stays on disk. Remove the project directory and run setup again.

Examples:
  laraforge setup MyProject
  laraforge setup MyProject --domain myproject.local
  laraforge setup MyShop --with horizon,telescope
  laraforge setup MyShop --with everything --development`,
	Args: cobra.ExactArgs(1),
	RunE: runSetup,
}

var (
	setupDomain      string
	setupWith        []string
	setupDevelopment bool
)

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().StringVar(&setupDomain, "domain", "application.local", "Domain name where the project will be hosted")
	setupCmd.Flags().StringSliceVar(&setupWith, "with", nil, fmt.Sprintf("Additional packages to install (%v, or everything)", packages.Known))
	setupCmd.Flags().BoolVar(&setupDevelopment, "development", false, "Install the development version of laravel")
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level: logging.ParseLevel(viper.GetString("log-level")),
	})

	projectName := args[0]

	fmt.Println("Validating provided values...")

	if err := ValidateProjectName(projectName); err != nil {
		return err
	}

	if err := ValidateDomain(setupDomain); err != nil {
		return err
	}

	selection, err := packages.Normalize(setupWith)
	if err != nil {
		return err
	}

	fmt.Println("Initializing the project configuration...")

	cfg, err := config.Load(projectName, setupDomain, selection, setupDevelopment)
	if err != nil {
		return err
	}

	exec := runner.New(logger)

	// directory structure
	fmt.Println("Setting up the directory structure of the project...")

	tree := scaffolding.ProjectTree(cfg.Project.Name)
	if err := tree.Create("."); err != nil {
		return err
	}

	// TLS certificate
	fmt.Println("Generating the TLS certificate...")

	sslDir := filepath.Join(cfg.Project.Name, "configuration", "nginx", "ssl")
	generator := certs.NewGenerator(cfg.Project.Domain)
	if err := generator.Generate(); err != nil {
		return err
	}
	if err := generator.Write(sslDir, cfg.Services.Nginx.SSL.Key, cfg.Services.Nginx.SSL.Certificate); err != nil {
		return err
	}

	// configuration files
	fmt.Println("Generating the configuration files for the project...")

	renderCtx := scaffolding.NewContext(cfg)
	if err := scaffolding.GenerateConfigurationFiles(cfg.Project.Name, renderCtx, selection); err != nil {
		return err
	}

	// Laravel application
	fmt.Println("Pulling a fresh laravel project...")

	appRoot := filepath.Join(cfg.Project.Name, "application")
	if err := compose.PullLaravel(ctx, exec, appRoot, cfg.Project.Name, cfg.Project.Development); err != nil {
		return err
	}

	// git
	fmt.Println("Initializing a git repository for the project...")

	appDir := filepath.Join(appRoot, cfg.Project.Name)
	repo := git.NewRepository(exec, appDir)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	if err := repo.CommitAll(ctx, "initial commit"); err != nil {
		return err
	}
	if err := repo.NewBranch(ctx, "development"); err != nil {
		return err
	}

	// environment
	fmt.Println("Rewriting environment variables for the laravel project...")

	if err := envfile.Rewrite(filepath.Join(appDir, ".env"), envfile.Environment(cfg)); err != nil {
		return err
	}

	// first migration
	fmt.Println("Migrating the database...")

	stack := compose.NewStack(exec, cfg.Project.Name)
	if err := stack.With(ctx, stack.MigrateDatabase); err != nil {
		return err
	}

	// add-on packages
	if len(selection) > 0 {
		fmt.Println("Setting up additional packages...")

		installer := packages.NewInstaller(exec, cfg, logger, cfg.Project.Name)
		if err := installer.Install(ctx, selection); err != nil {
			return err
		}
	}

	fmt.Println("\n✓ Project successfully set up:")
	if err := tree.Render(os.Stdout); err != nil {
		return err
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. cd " + cfg.Project.Name)
	fmt.Println("  2. docker-compose up -d")
	fmt.Printf("  3. Open https://%s in your browser\n", cfg.Project.Domain)
	fmt.Println("\nSee the project's README.md for more information.")

	return nil
}
