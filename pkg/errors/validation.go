package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxURLLength bounds source URLs accepted for fetching.
const MaxURLLength = 2048

// ValidateURL validates a source URL for fetching.
// It requires an absolute http or https URL with a host and no control characters.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return New(ErrCodeInvalidInput, "URL too long (max %d characters)", MaxURLLength)
	}
	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "URL contains invalid control characters")
		}
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host")
	}
	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidatePositive checks that a layout dimension such as columns or
// max_width is at least one.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return New(ErrCodeInvalidOptions, "%s must be a positive integer, got %d", name, v)
	}
	return nil
}
