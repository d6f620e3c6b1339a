// Package cmd provides the command-line interface for laraforge with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --domain, etc.) - highest priority
//	2. LARAFORGE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (LARAFORGE_SERVICES_POSTGRES_PASSWORD, etc.)
//	4. Configuration files (.laraforge.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "laraforge",
	Short: "Scaffold Dockerized Laravel projects",
	Long: `Laraforge scaffolds Laravel projects that run on Docker: it creates the
directory skeleton, renders the nginx, supervisor and docker-compose
configuration, generates a self-signed TLS certificate, pulls a fresh
Laravel application through a containerized Composer, initializes git, and
rewrites the application's environment file.

Quick Start:
  laraforge doctor                     Check the host for required tools
  laraforge setup MyProject            Scaffold a new project
  laraforge setup MyShop --domain shop.local --with horizon,telescope

Documentation: https://github.com/laraforge/laraforge`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .laraforge.yml, can also use LARAFORGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. LARAFORGE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .laraforge.yml in current directory
//
// Environment variables with the LARAFORGE_ prefix override file values,
// e.g. LARAFORGE_SERVICES_POSTGRES_PASSWORD.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("LARAFORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".laraforge")
	}

	viper.SetEnvPrefix("LARAFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing config files are fine; defaults cover everything.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
