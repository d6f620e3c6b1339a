// Package envfile rewrites the environment file of the generated Laravel
// application. Only managed keys are replaced; every other line, including
// comments and blanks, passes through untouched in its original order.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/laraforge/laraforge/internal/config"
)

var lineRegex = regexp.MustCompile(`^(\w+)=(.*?)\s*$`)

// Rewrite replaces the values of the managed keys in the env file at path.
func Rewrite(path string, env map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		out.WriteString(RewriteLine(scanner.Text(), env))
		out.WriteByte('\n')
	}

	if err := scanner.Err(); err != nil {
		file.Close()
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	file.Close()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(out.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// RewriteLine returns line with its value replaced when the line is a
// KEY=value assignment for a managed key.
func RewriteLine(line string, env map[string]string) string {
	trimmed := strings.TrimSpace(line)

	matches := lineRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return trimmed
	}

	key, value := matches[1], matches[2]
	if managed, ok := env[key]; ok {
		value = managed
	}

	return key + "=" + value
}

// Environment returns the managed environment for the generated project:
// application identity, postgres, redis-backed cache/session/queue, and the
// mailhog mailer.
func Environment(cfg *config.Config) map[string]string {
	name := cfg.Project.Name
	lower := strings.ToLower(name)

	return map[string]string{
		"APP_NAME": name,
		"APP_URL":  "https://" + cfg.Project.Domain,

		"DB_CONNECTION": "pgsql",
		"DB_HOST":       "postgresql",
		"DB_PORT":       "5432",
		"DB_DATABASE":   cfg.Services.Postgres.Database,
		"DB_USERNAME":   cfg.Services.Postgres.Username,
		"DB_PASSWORD":   cfg.Services.Postgres.Password,

		"CACHE_DRIVER":     "redis",
		"SESSION_DRIVER":   "redis",
		"QUEUE_CONNECTION": "redis",

		"REDIS_HOST": "redis",
		"REDIS_PORT": "6379",

		"MAIL_HOST":         "mailhog",
		"MAIL_PORT":         "1025",
		"MAIL_FROM_NAME":    lower,
		"MAIL_FROM_ADDRESS": lower + "@" + cfg.Project.Domain,
	}
}
