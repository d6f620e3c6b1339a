package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateArgument validates an argument destined for an external command to
// prevent injection attacks.
func ValidateArgument(arg string) error {
	// Reject arguments containing shell metacharacters
	dangerous := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerous {
		if strings.Contains(arg, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	// Reject path traversal attempts
	if strings.Contains(arg, "..") {
		return fmt.Errorf("contains path traversal: %s", arg)
	}

	return nil
}

// ValidateArguments validates a slice of command arguments.
func ValidateArguments(args []string) error {
	for _, arg := range args {
		if err := ValidateArgument(arg); err != nil {
			return fmt.Errorf("invalid argument %q: %w", arg, err)
		}
	}
	return nil
}

// ValidateCommand validates a command name against an allowlist.
func ValidateCommand(command string, allowed map[string]bool) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if !allowed[command] {
		return fmt.Errorf("command %q is not allowed", command)
	}

	return nil
}

// ValidatePath validates a relative file path before it is created or
// rewritten inside the generated project.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}

	return nil
}
