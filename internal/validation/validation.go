// Package validation provides the input validation rules used throughout
// laraforge: project naming conventions, domain syntax, and the security
// checks applied to arguments handed to external tools.
package validation

import (
	"os"
	"regexp"

	"golang.org/x/net/idna"
)

var (
	pascalCaseRegex = regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z]+)*$`)

	domainRegex = regexp.MustCompile(
		`(?i)^` +
			`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?))` + // domain
			`(?:/?|[/?]\S+)` + // path
			`$`,
	)
)

// IsPascalCase reports whether s follows the PascalCase convention required
// for project names (e.g. "MyProject", but not "myProject" or "My_Project").
func IsPascalCase(s string) bool {
	return pascalCaseRegex.MatchString(s)
}

// DomainIsValid reports whether domain is a syntactically valid hostname.
// The syntax check is backed by an IDNA lookup-profile conversion so that
// labels rejected by resolvers (empty labels, leading hyphens) also fail here.
func DomainIsValid(domain string) bool {
	if !domainRegex.MatchString(domain) {
		return false
	}

	if _, err := idna.Lookup.ToASCII(domain); err != nil {
		return false
	}

	return true
}

// DirectoryExists reports whether name exists in the current working
// directory and is a directory.
func DirectoryExists(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	return info.IsDir()
}
