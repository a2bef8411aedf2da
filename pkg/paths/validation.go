package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

// ValidatePath performs basic validation on a path
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateProjectPath checks that path is relative and stays inside the
// project root once cleaned
func ValidateProjectPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "~") {
		return errors.Newf(errors.ErrInvalidInput, "path %q must be relative to the project root", path).
			WithDetail("path", path)
	}

	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." {
		return errors.Newf(errors.ErrInvalidInput, "path %q names the project root", path).
			WithDetail("path", path)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "path %q escapes the project root", path).
			WithDetail("path", path)
	}

	return nil
}

// NormalizeProjectPath cleans a project-relative path into slash form
func NormalizeProjectPath(path string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
}

// ContainsPath checks if child is contained within parent
func ContainsPath(parent, child string) bool {
	parent = filepath.Clean(expandHome(parent))
	child = filepath.Clean(expandHome(child))

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
