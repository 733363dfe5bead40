package policy

import (
	"regexp"
	"strings"
)

// Allows reports whether the document grants action on resource.
// An explicit Deny wins over any Allow; with no matching Allow the request is implicitly denied.
func (d Document) Allows(action, resource string) bool {
	allowed := false

	for _, stmt := range d.Statement {
		if !stmt.matches(action, resource) {
			continue
		}

		switch stmt.Effect {
		case EffectDeny:
			return false
		case EffectAllow:
			allowed = true
		}
	}

	return allowed
}

func (s Statement) matches(action, resource string) bool {
	if !matchAny(action, s.Actions(), false) {
		return false
	}

	if s.Resource != nil && !matchAny(resource, s.Resources(), true) {
		return false
	}

	if s.NotResource != nil && matchAny(resource, s.NotResources(), true) {
		return false
	}

	return true
}

// matchAny checks if s matches any of the wildcard patterns.
// Actions are matched case-insensitively, resources case-sensitively.
func matchAny(s string, patterns []string, caseSensitive bool) bool {
	for _, pattern := range patterns {
		if matchesWildcardPattern(pattern, s, caseSensitive) {
			return true
		}
	}
	return false
}

// matchesWildcardPattern checks if a string matches a wildcard pattern.
// The pattern can contain * (any number of characters) and ? (exactly one character).
func matchesWildcardPattern(pattern, s string, caseSensitive bool) bool {
	if pattern == "*" || pattern == s {
		return true
	}

	expr := wildcardToRegex(pattern)
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}

	return re.MatchString(s)
}

func wildcardToRegex(pattern string) string {
	result := regexp.QuoteMeta(pattern)

	result = strings.ReplaceAll(result, `\?`, ".")
	result = strings.ReplaceAll(result, `\*`, ".*")

	return "^" + result + "$"
}
