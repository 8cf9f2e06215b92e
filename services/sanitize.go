package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML element from free-text input before it is
// persisted. Descriptions and justifications come straight from the client.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips HTML and trims surrounding whitespace from user-supplied text
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeTextPtr sanitizes an optional text field, preserving nil
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
