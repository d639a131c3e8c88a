// Package fileutil provides file and path helpers shared by the renderers,
// the share surface and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Permissions for files and directories written on behalf of the user.
const (
	DirPermissions  = 0o750
	FilePermissions = 0o644
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrUnsafeFilename         = errors.New("filename must be a plain base name")
)

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "leadmagnet-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// WriteInDir writes data to dir/name, creating dir if needed, and returns the
// full path. name must be a base name without separators.
func WriteInDir(dir, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrUnsafeFilename, name)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, FilePermissions); err != nil { // #nosec G306 -- user documents are meant to be readable
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath reports whether s looks like a path rather than a bare name.
//
//	"modern"          -> false
//	"./brand.yaml"    -> true
//	"C:\cfg\lm.yaml"  -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
