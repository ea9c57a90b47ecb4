// Package normalize provides helper functions for consistent string
// normalization across the application. Use these helpers instead of
// scattered strings.ToLower and strings.TrimSpace calls.
package normalize

import "strings"

// Slug normalizes a slug by trimming whitespace and lowercasing.
// Validity is checked separately by the slugs package.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status normalizes a content status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Locale normalizes a locale code ("en", "ar").
func Locale(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email normalizes an email address for storage and comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Search normalizes a free-text search query parameter.
func Search(s string) string {
	return strings.TrimSpace(s)
}
