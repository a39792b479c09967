package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxVertices bounds generated and uploaded graphs. Colony work grows with
// the square of the vertex count per ant, so larger inputs are refused early.
const MaxVertices = 5000

// ValidatePath validates a user-supplied file path.
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

// ValidateFormat checks that format is one of the allowed output formats.
// The comparison is case-insensitive.
func ValidateFormat(format string, allowed map[string]bool) error {
	if !allowed[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// FormatFromPath returns the lower-cased extension of path without the dot.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ValidateVertexCount checks that n is within [0, MaxVertices].
func ValidateVertexCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "vertex count cannot be negative: %d", n)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidInput, "vertex count %d exceeds the limit of %d", n, MaxVertices)
	}
	return nil
}

// ValidateDensity checks that p is a probability.
func ValidateDensity(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "edge density must be within [0, 1], got %v", p)
	}
	return nil
}
