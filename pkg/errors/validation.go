package errors

import (
	"strings"
	"unicode"
)

// MaxDegree bounds the domain size accepted from external input (CLI, API,
// serialized documents). Image arrays are materialized in memory, so an
// unchecked degree is a trivial resource-exhaustion vector.
const MaxDegree = 1 << 20

// ValidateDegree validates a domain size received from external input.
func ValidateDegree(degree int) error {
	if degree < 0 {
		return New(ErrCodeInvalidInput, "degree cannot be negative: %d", degree)
	}
	if degree > MaxDegree {
		return New(ErrCodeInvalidInput, "degree too large: %d (max %d)", degree, MaxDegree)
	}
	return nil
}

// ValidateGroupName validates a catalog entry name for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators (names appear in cache file paths)
//   - Maximum length of 128 characters
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "group name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "group name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "group name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "group name cannot contain path separators")
	}

	return nil
}

// ValidateNotation performs a cheap safety check on a cycle-notation string
// before it reaches the parser. Full syntax checking is the parser's job; this
// rejects inputs that are hostile rather than merely malformed.
func ValidateNotation(s string) error {
	if s == "" {
		return New(ErrCodeInvalidNotation, "cycle notation cannot be empty")
	}

	const maxNotationLength = 1 << 16
	if len(s) > maxNotationLength {
		return New(ErrCodeInvalidNotation, "cycle notation too long (max %d characters)", maxNotationLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNotation, "cycle notation contains invalid control characters")
		}
	}

	return nil
}
