package domain

import (
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugHyphenRe   = regexp.MustCompile(`-+`)
	slugPublicTail = "-red-tide"
)

// Slugify derives a URL-safe identifier from a location name: lower-case,
// strip everything outside [a-z0-9\s-], whitespace runs to one hyphen,
// hyphen runs collapsed, leading/trailing hyphens trimmed.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugHyphenRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// LocationSlug is the public identifier for a beach, city, or region page.
func LocationSlug(name string) string {
	return Slugify(name) + slugPublicTail
}
