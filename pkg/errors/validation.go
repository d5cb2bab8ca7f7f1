package errors

import "unicode"

// ValidateScorePath validates a score file path.
// Paths come from local CLI arguments, so relative segments (including
// "..") are legitimate; only malformed input is rejected.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateScorePath(path string) error {
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

// ValidateTitle validates a score title for safety and correctness.
// Titles appear in SVG output and file names, so control characters
// are rejected outright.
func ValidateTitle(title string) error {
	if len(title) > 256 {
		return New(ErrCodeInvalidScore, "title too long (max 256 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScore, "title contains invalid control characters")
		}
	}
	return nil
}
