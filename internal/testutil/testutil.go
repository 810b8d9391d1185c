package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// MemFs returns an in-memory filesystem rooted at a Windows-looking directory
func MemFs(t *testing.T) (afero.Fs, string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	dir := filepath.Join("C:", "Users", "tester", "Documents")

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}

	return fs, dir
}

// WriteFile creates a file with content in fs, creating parent directories
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return path
}

// ReadFile returns the content of path in fs
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}

	return string(data)
}
