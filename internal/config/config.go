// Package config manages laraforge configuration. Values come from (in
// order of precedence) command-line flags, LARAFORGE_* environment
// variables, an optional .laraforge.yml, and built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the full configuration threaded through the setup pipeline.
// Project identity comes from command-line arguments; service settings are
// overridable through the configuration file and environment.
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Services ServicesConfig `mapstructure:"services"`
	Images   ImagesConfig   `mapstructure:"images"`
}

// ProjectConfig identifies the project being scaffolded.
type ProjectConfig struct {
	Name        string   `mapstructure:"name" validate:"required"`
	Domain      string   `mapstructure:"domain" validate:"required,fqdn"`
	Packages    []string `mapstructure:"packages" validate:"dive,oneof=authentication dusk horizon sanctum scout socialite telescope"`
	Development bool     `mapstructure:"development"`
}

// ServicesConfig holds per-service settings for the generated stack.
type ServicesConfig struct {
	Nginx    NginxConfig    `mapstructure:"nginx"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Adminer  PortConfig     `mapstructure:"adminer"`
	Mailhog  PortConfig     `mapstructure:"mailhog"`
}

// NginxConfig holds the reverse-proxy settings.
type NginxConfig struct {
	SSL SSLConfig `mapstructure:"ssl"`
}

// SSLConfig names the certificate pair written into the nginx ssl directory.
type SSLConfig struct {
	Certificate string `mapstructure:"certificate" validate:"required"`
	Key         string `mapstructure:"key" validate:"required"`
}

// PostgresConfig holds the database credentials substituted into the
// generated compose file and .env.
type PostgresConfig struct {
	Database string `mapstructure:"database" validate:"required"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
}

// PortConfig holds a single published host port.
type PortConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// ImagesConfig pins the container image tags used by the generated stack.
type ImagesConfig struct {
	NodeTag string `mapstructure:"node_tag" validate:"required"`
	PHPTag  string `mapstructure:"php_tag" validate:"required"`
}

// SetDefaults registers the built-in defaults on a viper instance. Project
// name and domain intentionally have no default here; they come from the
// setup command's arguments.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("services.nginx.ssl.certificate", "certificate.pem")
	v.SetDefault("services.nginx.ssl.key", "key.pem")
	v.SetDefault("services.postgres.username", "username")
	v.SetDefault("services.postgres.password", "password")
	v.SetDefault("services.adminer.port", 8080)
	v.SetDefault("services.mailhog.port", 8025)
	v.SetDefault("images.node_tag", "stretch")
	v.SetDefault("images.php_tag", "8-fpm")
}

// Load builds the configuration for a project from the global viper state.
// The postgres database defaults to the lowercased project name.
func Load(name, domain string, packages []string, development bool) (*Config, error) {
	v := viper.GetViper()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.Project.Name = name
	cfg.Project.Domain = domain
	cfg.Project.Packages = packages
	cfg.Project.Development = development

	if cfg.Services.Postgres.Database == "" {
		cfg.Services.Postgres.Database = strings.ToLower(name)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a configuration against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if ok := AsValidationErrors(err, &errs); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// AsValidationErrors unwraps a validator.ValidationErrors from err.
func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	if errs, ok := err.(validator.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}
