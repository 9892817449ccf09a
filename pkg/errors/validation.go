package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

const maxPathLength = 4096

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

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

// ValidateOutputPath validates a destination for a rendered artifact.
// On top of [ValidatePath] it rejects paths that name a directory and,
// when ext is non-empty, paths whose extension disagrees with the format.
func ValidateOutputPath(path, ext string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	if ext == "" {
		return nil
	}
	got := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if got != "" && got != strings.ToLower(ext) {
		return New(ErrCodeInvalidPath, "output path %q does not match format %q", path, ext)
	}

	return nil
}
