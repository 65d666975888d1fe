package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const wordsPerMinute = 200

var (
	richText  = bluemonday.UGCPolicy()
	plainText = bluemonday.StrictPolicy()
)

// ReadTimeMinutes estimates how long body takes to read. Never less than one.
func ReadTimeMinutes(body string) int {
	words := len(strings.Fields(plainText.Sanitize(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// SanitizeHTML keeps the markup a blog post may safely carry and strips
// scripts, event handlers and the like.
func SanitizeHTML(s string) string {
	return richText.Sanitize(s)
}

// StripHTML removes every tag, leaving unescaped text only.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}
