package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArgument(t *testing.T) {
	valid := []string{
		"create-project",
		"--prefer-dist",
		"laravel/laravel",
		"type=bind,source=/home/user/app,target=/application",
		"{{.Server.Version}}",
		"initial commit",
	}
	for _, arg := range valid {
		assert.NoError(t, ValidateArgument(arg), "expected %q to be accepted", arg)
	}

	invalid := []string{
		"foo; rm -rf /",
		"foo && bar",
		"foo | bar",
		"$(whoami)",
		"../../etc/passwd",
		`foo"bar`,
		"foo'bar",
	}
	for _, arg := range invalid {
		assert.Error(t, ValidateArgument(arg), "expected %q to be rejected", arg)
	}
}

func TestValidateArguments(t *testing.T) {
	assert.NoError(t, ValidateArguments([]string{"add", "."}))

	err := ValidateArguments([]string{"add", "; rm"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestValidateCommand(t *testing.T) {
	allowed := map[string]bool{"git": true, "docker": true}

	assert.NoError(t, ValidateCommand("git", allowed))
	assert.Error(t, ValidateCommand("rm", allowed))
	assert.Error(t, ValidateCommand("", allowed))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("configuration/nginx/conf.d/default.conf"))
	assert.Error(t, ValidatePath(""))
	assert.Error(t, ValidatePath("../outside"))
	assert.Error(t, ValidatePath("/etc/passwd"))
}
