// Package util holds small text helpers shared by the blog and contact flows.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks   = runes.Remove(runes.In(unicode.Mn))
)

// Slugify lowercases s, folds accented letters to their base form and joins
// the remaining alphanumeric runs with single hyphens.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), s)
	if err != nil {
		folded = s
	}
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// IsSlug reports whether s is already in the form Slugify produces.
func IsSlug(s string) bool {
	return s != "" && Slugify(s) == s
}
