package errors

import (
	"strings"
	"unicode"
)

// maxNodeNameLength bounds node names accepted from users.
const maxNodeNameLength = 128

// ValidateNodeName validates a node name supplied by a user (CLI argument or
// query parameter) before it is looked up in a graph.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters or null bytes
//   - Maximum length of 128 characters
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}

	if len(name) > maxNodeNameLength {
		return New(ErrCodeInvalidInput, "node name too long (max %d characters)", maxNodeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}

	return nil
}
