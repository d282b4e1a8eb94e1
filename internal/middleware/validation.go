package middleware

import (
	"errors"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxMessageLength bounds a single chat message.
const MaxMessageLength = 4000

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the decode loop in SanitizeText.
const maxSanitizePasses = 8

// SanitizeText strips all markup from user-supplied text and trims it.
// Entities are decoded so apostrophes survive, and the result is sanitized
// again until stable, so entity-encoded markup cannot decode into tags.
func SanitizeText(s string) string {
	for range maxSanitizePasses {
		next := html.UnescapeString(strictPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
	// Still changing: keep the escaped form rather than risk live markup.
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// ValidateMessageContent validates a chat message after sanitizing.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("message is required")
	}
	if len(content) > MaxMessageLength {
		return errors.New("message exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}

// ValidateID checks a group, session or booking ID taken from a path. Catalog
// IDs are operator-edited, so any printable text without slashes or spaces is
// accepted.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if len(id) > 128 {
		return errors.New("id exceeds maximum length")
	}
	if !utf8.ValidString(id) || id == "." || id == ".." {
		return errors.New("id contains invalid characters")
	}
	for _, r := range id {
		if r == '/' || r == '\\' || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return errors.New("id contains invalid characters")
		}
	}
	return nil
}
