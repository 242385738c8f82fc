package utils

import "strings"

// Slugify derives the public URL slug from a store's display name: the
// name is trimmed, lower-cased, and every run of whitespace collapses to a
// single hyphen.  "My Shop" -> "my-shop".  The transform is idempotent:
// feeding a slug back through (with hyphens read as separators) yields the
// same slug, so stored slugs never drift from recomputed ones.
func Slugify(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(name)), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-'
	})
	return strings.Join(fields, "-")
}
