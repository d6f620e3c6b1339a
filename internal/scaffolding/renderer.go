package scaffolding

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/laraforge/laraforge/internal/config"
)

// Context carries the substitution variables for the file templates.
type Context struct {
	ProjectName      string
	ProjectDomain    string
	UserID           int
	GroupID          int
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	AdminerPort      int
	MailhogPort      int
	NodeTag          string
	PHPTag           string
	SSLCertificate   string
	SSLKey           string
}

// NewContext derives a template context from the configuration and the
// current user identity.
func NewContext(cfg *config.Config) Context {
	return Context{
		ProjectName:      cfg.Project.Name,
		ProjectDomain:    cfg.Project.Domain,
		UserID:           os.Geteuid(),
		GroupID:          os.Getegid(),
		PostgresDB:       cfg.Services.Postgres.Database,
		PostgresUser:     cfg.Services.Postgres.Username,
		PostgresPassword: cfg.Services.Postgres.Password,
		AdminerPort:      cfg.Services.Adminer.Port,
		MailhogPort:      cfg.Services.Mailhog.Port,
		NodeTag:          cfg.Images.NodeTag,
		PHPTag:           cfg.Images.PHPTag,
		SSLCertificate:   cfg.Services.Nginx.SSL.Certificate,
		SSLKey:           cfg.Services.Nginx.SSL.Key,
	}
}

// generatedFile associates a template with its destination inside the
// project directory.
type generatedFile struct {
	path     string
	template string
	mode     os.FileMode
}

func generatedFiles() []generatedFile {
	return []generatedFile{
		{path: "docker-compose.yml", template: dockerComposeTemplate, mode: 0644},
		{path: "run", template: runScriptTemplate, mode: 0755},
		{path: ".gitignore", template: gitignoreTemplate, mode: 0644},
		{path: "README.md", template: readmeTemplate, mode: 0644},
		{path: filepath.Join("configuration", "nginx", "conf.d", "default.conf"), template: nginxDefaultTemplate, mode: 0644},
		{path: filepath.Join("configuration", "nginx", "conf.d", "utils.conf"), template: nginxUtilsTemplate, mode: 0644},
		{path: filepath.Join("configuration", "supervisor", "conf.d", "supervisord.conf"), template: supervisordTemplate, mode: 0644},
		{path: filepath.Join("docker-compose", "services", "php", "Dockerfile"), template: phpDockerfileTemplate, mode: 0644},
	}
}

// GenerateConfigurationFiles renders every configuration-file template into
// projectDir and resolves the conditional blocks according to the selected
// add-on packages.
func GenerateConfigurationFiles(projectDir string, ctx Context, packages []string) error {
	for _, file := range generatedFiles() {
		dest := filepath.Join(projectDir, file.path)
		if err := RenderFile(dest, file.template, ctx, file.mode); err != nil {
			return err
		}
	}

	selected := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		selected[pkg] = true
	}

	if err := ResolveBlock(filepath.Join(projectDir, "docker-compose.yml"), "dusk", selected["dusk"]); err != nil {
		return err
	}

	supervisord := filepath.Join(projectDir, "configuration", "supervisor", "conf.d", "supervisord.conf")
	if err := ResolveBlock(supervisord, "horizon", selected["horizon"]); err != nil {
		return err
	}

	return nil
}

// RenderFile renders a single template to dest with the given mode.
func RenderFile(dest, content string, ctx Context, mode os.FileMode) error {
	rendered, err := Render(content, ctx)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(dest), err)
	}

	if err := os.WriteFile(dest, []byte(rendered), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}

// Render executes a template string against the context.
func Render(content string, ctx Context) (string, error) {
	tmpl, err := template.New("file").Option("missingkey=error").Parse(strings.TrimPrefix(content, "\n"))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
