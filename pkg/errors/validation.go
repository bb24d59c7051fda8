package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxKeyLength  = 128
	maxTextLength = 10000
	maxPathLength = 500
)

// keyRegex matches node keys: identifiers, uuids and dotted or slashed paths.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:/-]*$`)

// ValidateKey validates a node key from a map document. Keys end up in
// JSON output, SVG element ids and URLs of the HTTP API, so the rules are
// conservative:
//   - No empty keys
//   - Maximum length of 128 characters
//   - Letters, digits and . _ : / - only, starting with a letter or digit
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidMap, "node key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidMap, "node key too long (max %d characters)", maxKeyLength)
	}

	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidMap, "invalid node key: %q", key)
	}

	return nil
}

// ValidateText validates the text of a node. Newlines and tabs are allowed,
// other control characters are not.
func ValidateText(text string) error {
	if len(text) > maxTextLength {
		return New(ErrCodeInvalidMap, "node text too long (max %d bytes)", maxTextLength)
	}

	for _, r := range text {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidMap, "node text contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path given to the CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks a document format name against the supported set
// and returns it normalized to lower case.
func ValidateFormat(format string, supported ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	for _, s := range supported {
		if f == s {
			return f, nil
		}
	}
	return "", New(ErrCodeUnsupported, "unsupported format %q (want one of %s)", format, strings.Join(supported, ", "))
}
