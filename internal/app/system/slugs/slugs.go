// Package slugs validates and normalizes URL slugs.
//
// Resource slugs are lowercase-kebab: ^[a-z0-9-]+$. Page slugs are
// path-style and must start with "/" ("/", "/about", "/services/transport").
// Uniqueness is enforced by a unique index; the check-slug endpoints are a
// best-effort pre-check, not transactionally safe against races.
package slugs

import (
	"regexp"
	"strings"
)

var (
	resourceRe = regexp.MustCompile(`^[a-z0-9-]+$`)
	pagePathRe = regexp.MustCompile(`^/(?:[a-z0-9-]+(?:/[a-z0-9-]+)*)?$`)
)

// IsValid reports whether s is a valid lowercase-kebab resource slug.
func IsValid(s string) bool {
	return resourceRe.MatchString(s)
}

// IsValidPagePath reports whether s is a valid page slug. Page slugs start
// with "/" and each segment is lowercase-kebab; "/" alone is the home page.
func IsValidPagePath(s string) bool {
	return pagePathRe.MatchString(s)
}

// Normalize lowercases and trims a slug candidate. It does not attempt to
// fix an invalid slug; validation is a separate step so the admin form gets
// a 400 with a field error instead of a silently mangled slug.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
