package cmd

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/laraforge/laraforge/internal/validation"
)

// ValidateProjectName validates the project name argument: PascalCase and
// no pre-existing directory of the same name. Invalid names get a
// PascalCase suggestion when one can be derived.
func ValidateProjectName(name string) error {
	if !validation.IsPascalCase(name) {
		if suggestion := PascalCaseSuggestion(name); suggestion != "" && suggestion != name {
			return fmt.Errorf("the project name %q is not pascal-cased. Did you mean %q?", name, suggestion)
		}
		return fmt.Errorf("the project name %q is not pascal-cased", name)
	}

	if validation.DirectoryExists(name) {
		return fmt.Errorf("the directory %q already exists in the current working directory", name)
	}

	return nil
}

// ValidateDomain validates the --domain flag value.
func ValidateDomain(domain string) error {
	if !validation.DomainIsValid(domain) {
		return fmt.Errorf("the domain %q is invalid", domain)
	}
	return nil
}

// PascalCaseSuggestion derives a PascalCase rendering of name for error
// messages ("my_project" becomes "MyProject"). Returns "" when nothing
// usable remains.
func PascalCaseSuggestion(name string) string {
	titler := cases.Title(language.English)

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r)
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	var out strings.Builder
	for _, word := range words {
		out.WriteString(titler.String(strings.ToLower(word)))
	}

	return out.String()
}
