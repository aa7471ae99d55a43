package utils

import "strings"

// Slugify collapses whitespace runs to single hyphens and lowercases the
// result, for embedding names into document ids.
func Slugify(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), "-"))
}

// NormalizePlate strips spaces and hyphens from a plate number and uppercases
// it, so the same physical plate always compares equal.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return strings.ToUpper(normalized)
}
