package ingestion

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag. Policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

var (
	htmlTagPattern    = regexp.MustCompile(`(?i)</?(html|body|div|p|br|ul|ol|li|span|h[1-6]|strong|em|a|section|article|table|tr|td)\b[^>]*>`)
	blockClosePattern = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|tr|section|article|ul|ol)>|<br\s*/?>`)
)

// LooksLikeHTML reports whether text contains common HTML markup, as when a job
// description is pasted straight from a web page.
func LooksLikeHTML(text string) bool {
	return htmlTagPattern.MatchString(text)
}

// StripHTML removes all markup from text, keeping block elements on separate lines
// and decoding entities.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	text = blockClosePattern.ReplaceAllString(text, "$0\n")
	stripped := strictPolicy.Sanitize(text)
	return CleanText(html.UnescapeString(stripped))
}

// PrepareJobDescription returns plain text ready for keyword extraction.
// Plain text passes through untouched.
func PrepareJobDescription(text string) string {
	if !LooksLikeHTML(text) {
		return text
	}
	return strings.TrimSpace(StripHTML(text))
}
