// Package validation checks local files before the client trusts or writes them.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// CredentialFilePermissions reports an error when a file holding a token
// can be read or written by anyone other than its owner.
func CredentialFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0077 != 0 {
		return fmt.Errorf("credential file permissions are too permissive: %s (expected 0600)", mode.Perm())
	}
	return nil
}

// CredentialFile checks the file at path. A missing file is valid.
func CredentialFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking credential file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("credential path %s is not a regular file", path)
	}
	return CredentialFilePermissions(info.Mode())
}

// ExportPath checks that path can receive an export: it must not name a
// directory, and its parent, when it exists, must be one.
func ExportPath(path string) error {
	if path == "" {
		return fmt.Errorf("export path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("export path %s is a directory", path)
	}

	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	if os.IsNotExist(err) {
		// WriteFile creates missing parents.
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", parent, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent of export path %s is not a directory", path)
	}
	return nil
}
