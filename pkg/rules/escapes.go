package rules

import (
	"strings"
)

// EscapeList is a set of substrings that protect a path from compilation and deletion
type EscapeList []string

// Matches reports whether any escape occurs in path
func (e EscapeList) Matches(path string) bool {
	for _, escape := range e {
		if escape != "" && strings.Contains(path, escape) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether path contains one of the substrings
func ContainsAny(path string, substrings []string) bool {
	return EscapeList(substrings).Matches(path)
}
