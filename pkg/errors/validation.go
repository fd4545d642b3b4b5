package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateSessionID validates a session scope identifier.
// Scopes are issued as UUIDs by the server; anything else is rejected
// before it reaches a storage backend (file names, Redis keys, SQL rows).
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSession, "session id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidSession, err, "session id must be a UUID")
	}
	return nil
}

// ValidateComponentID validates a component identifier taken from a URL or
// CLI argument. The document itself may contain any ids; this only guards
// request input.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "component id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "component id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an output or input file path given on the command
// line or in the config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
